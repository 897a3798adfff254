package otp

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(clock *fakeClock) (*Registry, *MemoryStore) {
	store := NewMemoryStore()
	return NewRegistry(store, WithClock(clock.Now)), store
}

func TestIssueVerify_SingleUse(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	reg, store := newTestRegistry(clock)

	code, err := reg.Issue(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	clock.Advance(4 * time.Minute)
	ok, err := reg.Verify(ctx, 7, code)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, store.Len())

	ok, err = reg.Verify(ctx, 7, code)
	require.NoError(t, err)
	assert.False(t, ok, "a consumed code must not verify twice")
}

func TestVerify_ExpiredClearsEntry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	reg, store := newTestRegistry(clock)

	code, err := reg.Issue(ctx, 7)
	require.NoError(t, err)

	clock.Advance(5*time.Minute + time.Second)
	ok, err := reg.Verify(ctx, 7, code)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestVerify_ExactlyAtExpiryStillValid(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	reg, _ := newTestRegistry(clock)

	code, err := reg.Issue(ctx, 1)
	require.NoError(t, err)

	clock.Advance(DefaultTTL)
	ok, err := reg.Verify(ctx, 1, code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_WrongCodeKeepsEntry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore()
	reg := NewRegistry(store, WithClock(clock.Now), WithGenerator(func() (string, error) { return "123456", nil }))

	_, err := reg.Issue(ctx, 3)
	require.NoError(t, err)

	ok, err := reg.Verify(ctx, 3, "654321")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())

	ok, err = reg.Verify(ctx, 3, "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_NoEntry(t *testing.T) {
	reg, _ := newTestRegistry(newFakeClock())

	ok, err := reg.Verify(context.Background(), 99, "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIssue_OverwritesPreviousCode(t *testing.T) {
	ctx := context.Background()
	codes := []string{"111111", "222222"}
	i := 0
	store := NewMemoryStore()
	reg := NewRegistry(store, WithClock(newFakeClock().Now), WithGenerator(func() (string, error) {
		c := codes[i]
		i++
		return c, nil
	}))

	_, err := reg.Issue(ctx, 5)
	require.NoError(t, err)
	_, err = reg.Issue(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	ok, err := reg.Verify(ctx, 5, "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = reg.Verify(ctx, 5, "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCodesAreNotSharedAcrossUsers(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemoryStore(), WithGenerator(func() (string, error) { return "424242", nil }))

	_, err := reg.Issue(ctx, 1)
	require.NoError(t, err)

	ok, err := reg.Verify(ctx, 2, "424242")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRevoke_OnlyMatchingCode(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	reg := NewRegistry(store, WithGenerator(func() (string, error) { return "777777", nil }))

	_, err := reg.Issue(ctx, 8)
	require.NoError(t, err)

	require.NoError(t, reg.Revoke(ctx, 8, "000000"))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, reg.Revoke(ctx, 8, "777777"))
	assert.Equal(t, 0, store.Len())
}

func TestVerify_ConcurrentOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(newFakeClock())

	code, err := reg.Issue(ctx, 11)
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, err := reg.Verify(ctx, 11, code); err == nil && ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

type failingStore struct {
	*MemoryStore
}

func (s *failingStore) Set(context.Context, string, Entry) error {
	return errors.New("store down")
}

func TestIssue_StoreFailure(t *testing.T) {
	reg := NewRegistry(&failingStore{MemoryStore: NewMemoryStore()})

	_, err := reg.Issue(context.Background(), 1)
	assert.Error(t, err)
}

func TestSixDigitCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := SixDigitCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0])
	}
}

func TestMemoryStore_Purge(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "a", Entry{Code: "1", ExpiresAt: now.Add(-time.Second)}))
	require.NoError(t, store.Set(ctx, "b", Entry{Code: "2", ExpiresAt: now.Add(time.Minute)}))

	assert.Equal(t, 1, store.Purge(now))
	_, ok, _ := store.Get(ctx, "b")
	assert.True(t, ok)
}

func TestStartPurger_RejectsBadSchedule(t *testing.T) {
	_, err := StartPurger(NewMemoryStore(), "not a schedule", nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestRedisEntryEncoding(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	e := Entry{Code: "123456", ExpiresAt: now.Add(5 * time.Minute)}

	raw, err := encodeEntry(e)
	require.NoError(t, err)
	got, err := decodeEntry(raw)
	require.NoError(t, err)
	assert.Equal(t, e.Code, got.Code)
	assert.True(t, e.ExpiresAt.Equal(got.ExpiresAt))

	assert.Equal(t, 5*time.Minute, entryTTL(e, now))
	assert.Equal(t, time.Second, entryTTL(e, now.Add(time.Hour)))
}

// interleavingStore runs onGet once, after the first Get returns, to model
// another replica acting between a read and the consume that follows it.
type interleavingStore struct {
	*MemoryStore
	onGet func()
}

func (s *interleavingStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	e, ok, err := s.MemoryStore.Get(ctx, key)
	if hook := s.onGet; hook != nil {
		s.onGet = nil
		hook()
	}
	return e, ok, err
}

func TestVerify_ReissueOnOtherReplicaSupersedesCode(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	shared := &interleavingStore{MemoryStore: NewMemoryStore()}

	replicaA := NewRegistry(shared, WithClock(clock.Now), WithGenerator(func() (string, error) { return "111111", nil }))
	replicaB := NewRegistry(shared, WithClock(clock.Now), WithGenerator(func() (string, error) { return "222222", nil }))

	_, err := replicaA.Issue(ctx, 4)
	require.NoError(t, err)

	shared.onGet = func() {
		_, err := replicaB.Issue(ctx, 4)
		require.NoError(t, err)
	}

	ok, err := replicaA.Verify(ctx, 4, "111111")
	require.NoError(t, err)
	assert.False(t, ok, "a code replaced mid-verify must not be accepted")

	ok, err = replicaB.Verify(ctx, 4, "222222")
	require.NoError(t, err)
	assert.True(t, ok, "the fresh code must survive")
}

func TestVerify_ExpiredDoesNotDropFreshCode(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	shared := &interleavingStore{MemoryStore: NewMemoryStore()}

	replicaA := NewRegistry(shared, WithClock(clock.Now), WithGenerator(func() (string, error) { return "111111", nil }))
	replicaB := NewRegistry(shared, WithClock(clock.Now), WithGenerator(func() (string, error) { return "222222", nil }))

	_, err := replicaA.Issue(ctx, 4)
	require.NoError(t, err)
	clock.Advance(DefaultTTL + time.Second)

	shared.onGet = func() {
		_, err := replicaB.Issue(ctx, 4)
		require.NoError(t, err)
	}

	ok, err := replicaA.Verify(ctx, 4, "111111")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, shared.Len())

	ok, err = replicaB.Verify(ctx, 4, "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_CompareAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "k", Entry{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}))

	deleted, err := store.CompareAndDelete(ctx, "k", "12345")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = store.CompareAndDelete(ctx, "k", "123456")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.CompareAndDelete(ctx, "k", "123456")
	require.NoError(t, err)
	assert.False(t, deleted)
}
