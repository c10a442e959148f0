package ordersets

import (
	"context"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

const lockScope = "cart-complete"

type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(scope, id string) string
}

// CartLock serializes completion attempts per cart with a redis SetNX lease.
type CartLock struct {
	store lockStore
	ttl   time.Duration
}

// NewCartLock builds a lock helper. A zero ttl falls back to two minutes.
func NewCartLock(store lockStore, ttl time.Duration) *CartLock {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &CartLock{store: store, ttl: ttl}
}

// Acquire takes the cart's completion lock and returns a release func. A held
// lock surfaces as a conflict so callers can retry after the other attempt
// finishes or the lease expires.
func (l *CartLock) Acquire(ctx context.Context, cartID uuid.UUID) (func(), error) {
	key := l.store.LockKey(lockScope, cartID.String())
	ok, err := l.store.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), l.ttl)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire cart lock")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart completion already in progress")
	}
	release := func() {
		_ = l.store.Del(context.WithoutCancel(ctx), key)
	}
	return release, nil
}
