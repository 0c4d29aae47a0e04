package ethereum

import (
	"context"
	"sync"
)

// nonceAllocator hands out monotonically increasing nonces for the single
// custodial signing key. Concurrent mints must never reuse a nonce, and the
// chain's pending count alone is racy between allocation and submission, so
// the counter is held in process behind a mutex. Seeded lazily from the
// chain and resynced after a failed submission.
type nonceAllocator struct {
	mu     sync.Mutex
	next   uint64
	seeded bool
	fetch  func(ctx context.Context) (uint64, error)
}

func newNonceAllocator(fetch func(ctx context.Context) (uint64, error)) *nonceAllocator {
	return &nonceAllocator{fetch: fetch}
}

// Next allocates the next nonce, seeding from the chain on first use.
func (a *nonceAllocator) Next(ctx context.Context) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.seeded {
		pending, err := a.fetch(ctx)
		if err != nil {
			return 0, err
		}
		a.next = pending
		a.seeded = true
	}

	nonce := a.next
	a.next++
	return nonce, nil
}

// Invalidate drops the local counter so the next allocation reseeds from the
// chain. Called after a submission failure, when the local view may have
// diverged from the node's.
func (a *nonceAllocator) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seeded = false
}
