package bus

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Relay fans selected topics out to other running instances through a shared
// envelope file in the state directory, polled at a short interval. Each
// envelope carries a fresh nonce and the writer's origin id: the nonce makes
// back-to-back identical payloads observable as distinct events, the origin id
// keeps a writer from re-delivering its own broadcast to itself. Delivery is
// at least once with no ordering guarantee; consumers dedup on their own keys.
type Relay struct {
	bus      *Bus
	path     string
	origin   string
	interval time.Duration

	mu        sync.Mutex
	lastNonce string
	stop      chan struct{}
}

type envelope struct {
	Origin string          `json:"origin"`
	Nonce  string          `json:"nonce"`
	Topic  string          `json:"topic"`
	Data   json.RawMessage `json:"data"`
	SentAt time.Time       `json:"sent_at"`
}

func NewRelay(b *Bus, dir string, interval time.Duration) *Relay {
	return &Relay{
		bus:      b,
		path:     filepath.Join(dir, "relay.json"),
		origin:   fmt.Sprintf("%d-%04d", os.Getpid(), rand.Intn(10000)),
		interval: interval,
	}
}

// Broadcast publishes locally and writes the envelope for the other instances.
// The file write is best effort, same policy as the rest of the client state.
func (r *Relay) Broadcast(topic string, data any) {
	r.bus.Publish(topic, data)

	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("relay encode %s: %v", topic, err)
		return
	}
	env := envelope{
		Origin: r.origin,
		Nonce:  fmt.Sprintf("%d-%06d", time.Now().UnixNano(), rand.Intn(1000000)),
		Topic:  topic,
		Data:   raw,
		SentAt: time.Now(),
	}
	out, err := json.Marshal(env)
	if err != nil {
		log.Printf("relay encode %s: %v", topic, err)
		return
	}
	if err := os.WriteFile(r.path, out, 0o600); err != nil {
		log.Printf("relay write: %v", err)
	}
}

func (r *Relay) Start() {
	r.mu.Lock()
	if r.stop != nil {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				r.tick()
			}
		}
	}()
}

func (r *Relay) Stop() {
	r.mu.Lock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
	r.mu.Unlock()
}

func (r *Relay) tick() {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return
	}
	if env.Nonce == "" || env.Origin == r.origin {
		return
	}
	// Envelopes left behind by a previous session are not replayed.
	if time.Since(env.SentAt) > 30*time.Second {
		return
	}

	r.mu.Lock()
	seen := env.Nonce == r.lastNonce
	if !seen {
		r.lastNonce = env.Nonce
	}
	r.mu.Unlock()
	if seen {
		return
	}
	r.bus.Publish(env.Topic, env.Data)
}
