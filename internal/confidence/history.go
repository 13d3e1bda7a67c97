package confidence

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxHistoryEntries caps the rolling outcome window per session.
const maxHistoryEntries = 20

// HistoryStore keeps the rolling record of prediction outcomes for each
// chat session. It is the engine's only cross-turn mutable state, so
// implementations must be safe for concurrent sessions.
type HistoryStore interface {
	// Append records one resolved prediction (true = the action was
	// right) and trims the window to maxHistoryEntries.
	Append(sessionID string, success bool) error
	// Accuracy returns the rolling success rate and whether any
	// history exists for the session.
	Accuracy(sessionID string) (float64, bool)
}

// MemoryHistoryStore is the default in-process store: a map of capped
// windows with a per-session lock, so concurrent turns in unrelated
// sessions never contend.
type MemoryHistoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionWindow
}

type sessionWindow struct {
	mu       sync.Mutex
	outcomes []float64
}

// NewMemoryHistoryStore creates an empty in-memory store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{sessions: make(map[string]*sessionWindow)}
}

func (s *MemoryHistoryStore) window(sessionID string) *sessionWindow {
	s.mu.RLock()
	w, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok = s.sessions[sessionID]; ok {
		return w
	}
	w = &sessionWindow{}
	s.sessions[sessionID] = w
	return w
}

// Append records an outcome for the session.
func (s *MemoryHistoryStore) Append(sessionID string, success bool) error {
	w := s.window(sessionID)
	w.mu.Lock()
	defer w.mu.Unlock()

	value := 0.0
	if success {
		value = 1.0
	}
	w.outcomes = append(w.outcomes, value)
	if len(w.outcomes) > maxHistoryEntries {
		w.outcomes = w.outcomes[len(w.outcomes)-maxHistoryEntries:]
	}
	return nil
}

// Accuracy returns the session's rolling success rate.
func (s *MemoryHistoryStore) Accuracy(sessionID string) (float64, bool) {
	s.mu.RLock()
	w, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.outcomes) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range w.outcomes {
		sum += v
	}
	return sum / float64(len(w.outcomes)), true
}

// RedisHistoryStore keeps the same capped windows in Redis so the
// accuracy history survives restarts and is shared across nodes.
type RedisHistoryStore struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

// NewRedisHistoryStore wraps an existing Redis client. Windows expire
// with the session after ttl of inactivity.
func NewRedisHistoryStore(client *redis.Client, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{
		client:  client,
		ttl:     ttl,
		timeout: 2 * time.Second,
	}
}

func historyKey(sessionID string) string {
	return "maitred:accuracy:" + sessionID
}

// Append pushes the outcome and trims the list to the window size.
func (s *RedisHistoryStore) Append(sessionID string, success bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	value := "0"
	if success {
		value = "1"
	}

	key := historyKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, value)
	pipe.LTrim(ctx, key, -maxHistoryEntries, -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording outcome for session %s: %w", sessionID, err)
	}
	return nil
}

// Accuracy reads the window back; Redis errors degrade to "no history"
// so scoring never fails.
func (s *RedisHistoryStore) Accuracy(sessionID string) (float64, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	values, err := s.client.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil || len(values) == 0 {
		return 0, false
	}

	var sum float64
	for _, v := range values {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		sum += n
	}
	return sum / float64(len(values)), true
}
