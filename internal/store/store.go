package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Store is the client-persisted key-value state: unread baseline, seen-question
// keys, seen offer responses, one-shot chat targets. One JSON file per profile,
// read on startup, rewritten on every mutation. Writes are best effort; losing
// one only means an already-seen notification may resurface next session.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".saleday")
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	s := &Store{
		path: filepath.Join(dir, "state.json"),
		data: make(map[string]json.RawMessage),
	}
	raw, err := os.ReadFile(s.path)
	if err == nil {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			// A corrupt state file degrades to redundant notifications,
			// never to losing real content. Start fresh.
			log.Printf("state file unreadable, resetting: %v", err)
			s.data = make(map[string]json.RawMessage)
		}
	}
	return s, nil
}

// InMemory returns a store that never persists, for when the state directory
// cannot be created. Seen-sets and baselines then last only for the session.
func InMemory() *Store {
	return &Store{data: make(map[string]json.RawMessage)}
}

// Get unmarshals the stored value into v. Returns false when the key is absent
// or the stored bytes no longer fit v.
func (s *Store) Get(key string, v any) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false
	}
	return true
}

func (s *Store) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("state set %q: %v", key, err)
		return
	}
	s.mu.Lock()
	s.data[key] = raw
	s.persistLocked()
	s.mu.Unlock()
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.persistLocked()
	}
	s.mu.Unlock()
}

// TakeOnce reads and deletes in one step, for one-shot keys like the forced
// chat target.
func (s *Store) TakeOnce(key string, v any) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	if ok {
		delete(s.data, key)
		s.persistLocked()
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Clear drops every key, used on sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	s.data = make(map[string]json.RawMessage)
	s.persistLocked()
	s.mu.Unlock()
}

func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}
	raw, err := json.Marshal(s.data)
	if err != nil {
		log.Printf("state encode: %v", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		log.Printf("state write: %v", err)
	}
}
