package auth

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetIntent is the ephemeral record of one in-progress password
// reset.  It references the target user and whether the one-time
// code was verified; the new-password step is reachable only when
// Verified is true.
type ResetIntent struct {
	UserID   uint64
	Verified bool
}

// IntentStore keeps reset intents keyed by the opaque reset token
// handed to the client.  Entries expire after a TTL, which realizes
// the timeout edge of the reset state machine.  Put overwrites an
// existing entry and restarts its TTL.
type IntentStore interface {
	Put(ctx context.Context, token string, intent ResetIntent, ttl time.Duration) error
	// Get returns the intent and true when a live entry exists.
	Get(ctx context.Context, token string) (ResetIntent, bool, error)
	Delete(ctx context.Context, token string) error
}

// ----- Redis-backed store -----

// RedisIntentStore stores each intent as a small Redis hash under
// "reset:<token>" so concurrent request handlers on any instance
// see the same flow state.
type RedisIntentStore struct{ RDB *redis.Client }

func NewRedisIntentStore(rdb *redis.Client) *RedisIntentStore {
	return &RedisIntentStore{RDB: rdb}
}

func intentKey(token string) string { return "reset:" + token }

func (s *RedisIntentStore) Put(ctx context.Context, token string, intent ResetIntent, ttl time.Duration) error {
	key := intentKey(token)
	verified := "0"
	if intent.Verified {
		verified = "1"
	}
	pipe := s.RDB.TxPipeline()
	pipe.HSet(ctx, key, "user_id", strconv.FormatUint(intent.UserID, 10), "verified", verified)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisIntentStore) Get(ctx context.Context, token string) (ResetIntent, bool, error) {
	vals, err := s.RDB.HGetAll(ctx, intentKey(token)).Result()
	if err != nil {
		return ResetIntent{}, false, err
	}
	if len(vals) == 0 { // HGETALL returns an empty map for missing keys
		return ResetIntent{}, false, nil
	}
	userID, err := strconv.ParseUint(vals["user_id"], 10, 64)
	if err != nil {
		return ResetIntent{}, false, nil
	}
	return ResetIntent{UserID: userID, Verified: vals["verified"] == "1"}, true, nil
}

func (s *RedisIntentStore) Delete(ctx context.Context, token string) error {
	return s.RDB.Del(ctx, intentKey(token)).Err()
}

// ----- In-memory fallback store -----

// MemoryIntentStore is a process-local IntentStore used when Redis
// is unavailable and in tests.  Expired entries are dropped lazily
// on read.
type MemoryIntentStore struct {
	mu      sync.Mutex
	entries map[string]memoryIntent
}

type memoryIntent struct {
	intent    ResetIntent
	expiresAt time.Time
}

func NewMemoryIntentStore() *MemoryIntentStore {
	return &MemoryIntentStore{entries: make(map[string]memoryIntent)}
}

func (s *MemoryIntentStore) Put(_ context.Context, token string, intent ResetIntent, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryIntent{intent: intent, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryIntentStore) Get(_ context.Context, token string) (ResetIntent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return ResetIntent{}, false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, token)
		return ResetIntent{}, false, nil
	}
	return e.intent, true, nil
}

func (s *MemoryIntentStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
