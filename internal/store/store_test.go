package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	s.Set("unread_baseline:7", 12)
	s.Set("seen_questions:7", map[string]bool{"41#question": true})

	var baseline int
	require.True(t, s.Get("unread_baseline:7", &baseline))
	assert.Equal(t, 12, baseline)

	var seen map[string]bool
	require.True(t, s.Get("seen_questions:7", &seen))
	assert.True(t, seen["41#question"])

	assert.False(t, s.Get("missing", &baseline))
}

func TestDelete(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	s.Set("k", "v")
	s.Delete("k")
	s.Delete("k") // idempotent

	var v string
	assert.False(t, s.Get("k", &v))
}

func TestTakeOnceIsOneShot(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	s.Set("pending_chat_target:7", map[string]uint{"counterpart_id": 3, "product_id": 5})

	var target map[string]uint
	require.True(t, s.TakeOnce("pending_chat_target:7", &target))
	assert.Equal(t, uint(3), target["counterpart_id"])

	assert.False(t, s.TakeOnce("pending_chat_target:7", &target))
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir)
	require.NoError(t, err)
	first.Set("unread_baseline:7", 4)
	first.Set("gone", true)
	first.Delete("gone")

	second, err := Open(dir)
	require.NoError(t, err)

	var baseline int
	require.True(t, second.Get("unread_baseline:7", &baseline))
	assert.Equal(t, 4, baseline)

	var b bool
	assert.False(t, second.Get("gone", &b))
}

func TestCorruptFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{oops"), 0o600))

	s, err := Open(dir)
	require.NoError(t, err)

	var v int
	assert.False(t, s.Get("anything", &v))

	// The store keeps working after the reset.
	s.Set("anything", 1)
	require.True(t, s.Get("anything", &v))
	assert.Equal(t, 1, v)
}

func TestInMemoryNeverTouchesDisk(t *testing.T) {
	s := InMemory()
	s.Set("k", 1)
	s.Clear()
	s.Set("k", 2)

	var v int
	require.True(t, s.Get("k", &v))
	assert.Equal(t, 2, v)
}

func TestClearDropsEverything(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	s.Set("a", 1)
	s.Set("b", 2)
	s.Clear()

	var v int
	assert.False(t, s.Get("a", &v))

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.False(t, reopened.Get("b", &v))
}
