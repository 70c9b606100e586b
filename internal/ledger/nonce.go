package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/core/types"
)

// nonceTracker assigns sequence numbers to transactions submitted by the signing identity.
//
// The pending nonce is fetched from the node on first use and incremented locally after each
// accepted submission, so concurrent requests never reuse a nonce. A failed submission
// discards the local value and the next submission resynchronizes with the node.
type nonceTracker struct {
	mu      sync.Mutex
	next    uint64
	known   bool
	pending func(ctx context.Context) (uint64, error)
}

func newNonceTracker(pending func(ctx context.Context) (uint64, error)) *nonceTracker {
	return &nonceTracker{pending: pending}
}

// submit calls send with the next nonce. Submissions are serialized.
func (n *nonceTracker) submit(ctx context.Context, send func(nonce uint64) (*types.Transaction, error)) (*types.Transaction, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.known {
		nonce, err := n.pending(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pending nonce: %w", err)
		}
		n.next = nonce
		n.known = true
	}

	tx, err := send(n.next)
	if err != nil {
		n.known = false
		return nil, err
	}

	n.next++
	return tx, nil
}
