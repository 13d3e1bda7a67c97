package confidence

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryHistoryStore_EmptySession(t *testing.T) {
	store := NewMemoryHistoryStore()

	_, ok := store.Accuracy("unknown")
	assert.False(t, ok)
}

func TestMemoryHistoryStore_WindowCap(t *testing.T) {
	store := NewMemoryHistoryStore()

	// 5 failures followed by 25 successes; only the last 20 entries
	// (all successes) survive the cap.
	for i := 0; i < 5; i++ {
		assert.NoError(t, store.Append("s1", false))
	}
	for i := 0; i < 25; i++ {
		assert.NoError(t, store.Append("s1", true))
	}

	accuracy, ok := store.Accuracy("s1")
	assert.True(t, ok)
	assert.InDelta(t, 1.0, accuracy, 0.001)
}

func TestMemoryHistoryStore_SessionIsolation(t *testing.T) {
	store := NewMemoryHistoryStore()

	assert.NoError(t, store.Append("good", true))
	assert.NoError(t, store.Append("bad", false))

	good, _ := store.Accuracy("good")
	bad, _ := store.Accuracy("bad")
	assert.InDelta(t, 1.0, good, 0.001)
	assert.InDelta(t, 0.0, bad, 0.001)
}

func TestMemoryHistoryStore_ConcurrentSessions(t *testing.T) {
	store := NewMemoryHistoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := fmt.Sprintf("s%d", n)
			for j := 0; j < 30; j++ {
				_ = store.Append(session, true)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		accuracy, ok := store.Accuracy(fmt.Sprintf("s%d", i))
		assert.True(t, ok)
		assert.InDelta(t, 1.0, accuracy, 0.001)
	}
}
