package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Challenge is a pending one-time code for a session.
type Challenge struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CodeStore keeps pending challenges and failed-attempt counters keyed by
// session id. The counter is independent of the challenge, so issuing a new
// code does not reset it.
type CodeStore interface {
	// Put stores c, replacing any previous challenge for the session.
	Put(ctx context.Context, sessionID uuid.UUID, c Challenge, ttl time.Duration) error

	// Get returns the challenge, or ok=false when none is pending or it expired.
	Get(ctx context.Context, sessionID uuid.UUID) (c Challenge, ok bool, err error)

	// Delete discards the challenge and keeps the attempt counter.
	Delete(ctx context.Context, sessionID uuid.UUID) error

	// AddAttempt atomically increments the attempt counter and returns the
	// new value. The counter expires ttl after its first increment.
	AddAttempt(ctx context.Context, sessionID uuid.UUID, ttl time.Duration) (int, error)

	// Attempts returns the current attempt count, zero when none is recorded.
	Attempts(ctx context.Context, sessionID uuid.UUID) (int, error)

	// Clear discards both the challenge and the attempt counter.
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

type attemptCounter struct {
	count     int
	expiresAt time.Time
}

// memoryCodeStore implements CodeStore in process memory.
type memoryCodeStore struct {
	mu         sync.Mutex
	challenges map[uuid.UUID]Challenge
	attempts   map[uuid.UUID]attemptCounter
	now        func() time.Time
}

// NewMemoryCodeStore creates an in-process code store.
func NewMemoryCodeStore() CodeStore {
	return newMemoryCodeStore(time.Now)
}

func newMemoryCodeStore(now func() time.Time) *memoryCodeStore {
	return &memoryCodeStore{
		challenges: make(map[uuid.UUID]Challenge),
		attempts:   make(map[uuid.UUID]attemptCounter),
		now:        now,
	}
}

func (s *memoryCodeStore) Put(_ context.Context, sessionID uuid.UUID, c Challenge, ttl time.Duration) error {
	c.ExpiresAt = s.now().Add(ttl)

	s.mu.Lock()
	s.challenges[sessionID] = c
	s.mu.Unlock()
	return nil
}

func (s *memoryCodeStore) Get(_ context.Context, sessionID uuid.UUID) (Challenge, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.challenges[sessionID]
	if !ok {
		return Challenge{}, false, nil
	}
	if !s.now().Before(c.ExpiresAt) {
		delete(s.challenges, sessionID)
		return Challenge{}, false, nil
	}
	return c, true, nil
}

func (s *memoryCodeStore) Delete(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	delete(s.challenges, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *memoryCodeStore) AddAttempt(_ context.Context, sessionID uuid.UUID, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	counter, ok := s.attempts[sessionID]
	if !ok || !now.Before(counter.expiresAt) {
		counter = attemptCounter{expiresAt: now.Add(ttl)}
	}
	counter.count++
	s.attempts[sessionID] = counter
	return counter.count, nil
}

func (s *memoryCodeStore) Attempts(_ context.Context, sessionID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.attempts[sessionID]
	if !ok {
		return 0, nil
	}
	if !s.now().Before(counter.expiresAt) {
		delete(s.attempts, sessionID)
		return 0, nil
	}
	return counter.count, nil
}

func (s *memoryCodeStore) Clear(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	delete(s.challenges, sessionID)
	delete(s.attempts, sessionID)
	s.mu.Unlock()
	return nil
}

// addAttemptScript increments the counter and sets its expiry on creation.
var addAttemptScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// redisCodeStore implements CodeStore on Redis, relying on key expiry.
type redisCodeStore struct {
	client *redis.Client
	prefix string
}

// NewRedisCodeStore creates a code store backed by client.
func NewRedisCodeStore(client *redis.Client) CodeStore {
	return &redisCodeStore{
		client: client,
		prefix: "otp:",
	}
}

func (s *redisCodeStore) key(sessionID uuid.UUID) string {
	return s.prefix + sessionID.String()
}

func (s *redisCodeStore) attemptsKey(sessionID uuid.UUID) string {
	return s.prefix + "attempts:" + sessionID.String()
}

func (s *redisCodeStore) Put(ctx context.Context, sessionID uuid.UUID, c Challenge, ttl time.Duration) error {
	if c.ExpiresAt.IsZero() {
		c.ExpiresAt = time.Now().Add(ttl)
	}
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode challenge: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), b, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	return nil
}

func (s *redisCodeStore) Get(ctx context.Context, sessionID uuid.UUID) (Challenge, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return Challenge{}, false, nil
	}
	if err != nil {
		return Challenge{}, false, fmt.Errorf("failed to read challenge: %w", err)
	}

	var c Challenge
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Challenge{}, false, fmt.Errorf("failed to decode challenge: %w", err)
	}
	return c, true, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

func (s *redisCodeStore) AddAttempt(ctx context.Context, sessionID uuid.UUID, ttl time.Duration) (int, error) {
	n, err := addAttemptScript.Run(ctx, s.client, []string{s.attemptsKey(sessionID)}, ttl.Milliseconds()).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}
	return n, nil
}

func (s *redisCodeStore) Attempts(ctx context.Context, sessionID uuid.UUID) (int, error) {
	raw, err := s.client.Get(ctx, s.attemptsKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read attempts: %w", err)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to decode attempts: %w", err)
	}
	return n, nil
}

func (s *redisCodeStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(sessionID), s.attemptsKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear challenge: %w", err)
	}
	return nil
}
