package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"
)

// DefaultTTL is how long an issued code stays valid
const DefaultTTL = 5 * time.Minute

// Clock returns the current time
type Clock func() time.Time

// Generator produces a new code
type Generator func() (string, error)

// Registry issues and verifies one-time codes keyed by user id. At most one
// code is outstanding per user and each code verifies at most once.
type Registry struct {
	store    Store
	ttl      time.Duration
	now      Clock
	generate Generator
	locks    *keyLocks
}

// Option customises a Registry
type Option func(*Registry)

// WithTTL overrides DefaultTTL
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithClock injects the time source
func WithClock(now Clock) Option {
	return func(r *Registry) { r.now = now }
}

// WithGenerator injects the code generator
func WithGenerator(g Generator) Option {
	return func(r *Registry) { r.generate = g }
}

// NewRegistry creates a Registry backed by store
func NewRegistry(store Store, opts ...Option) *Registry {
	r := &Registry{
		store:    store,
		ttl:      DefaultTTL,
		now:      time.Now,
		generate: SixDigitCode,
		locks:    newKeyLocks(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TTL returns the validity window of issued codes
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Issue creates a fresh code for userID, replacing any outstanding one.
func (r *Registry) Issue(ctx context.Context, userID int64) (string, error) {
	code, err := r.generate()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	key := userKey(userID)
	unlock := r.locks.lock(key)
	defer unlock()

	entry := Entry{Code: code, ExpiresAt: r.now().Add(r.ttl)}
	if err := r.store.Set(ctx, key, entry); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify reports whether code is the live code for userID. A match consumes
// the entry. An expired entry is deleted and reported as a mismatch.
func (r *Registry) Verify(ctx context.Context, userID int64, code string) (bool, error) {
	key := userKey(userID)
	unlock := r.locks.lock(key)
	defer unlock()

	entry, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load otp: %w", err)
	}
	if !ok {
		return false, nil
	}

	if entry.Expired(r.now()) {
		// Only drop the expired code itself; a fresh one may have replaced it.
		if _, err := r.store.CompareAndDelete(ctx, key, entry.Code); err != nil {
			return false, fmt.Errorf("drop expired otp: %w", err)
		}
		return false, nil
	}

	if !sameCode(entry.Code, code) {
		return false, nil
	}

	// The store re-checks the code atomically. A concurrent consume or a
	// re-issue on another replica makes this report false.
	consumed, err := r.store.CompareAndDelete(ctx, key, code)
	if err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return consumed, nil
}

// Revoke removes the outstanding entry for userID if it still holds code.
// Used when delivering code failed, so it never counts as issued.
func (r *Registry) Revoke(ctx context.Context, userID int64, code string) error {
	key := userKey(userID)
	unlock := r.locks.lock(key)
	defer unlock()

	if _, err := r.store.CompareAndDelete(ctx, key, code); err != nil {
		return fmt.Errorf("revoke otp: %w", err)
	}
	return nil
}

// SixDigitCode returns a uniformly random code in [100000, 999999].
func SixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// keyLocks serialises operations on the same key while letting different
// keys proceed in parallel.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
