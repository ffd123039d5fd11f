package auction

import (
	"fmt"
	"sync"

	"github.com/vantran/live-auction-BE/internal/clock"
	"github.com/vantran/live-auction-BE/internal/util"
)

// Serializer guarantees that, for any single item, concurrent bid attempts
// are validated and applied one at a time, each against fully up-to-date
// state. This closes the check-then-act race where two bids both read the
// same current bid, both pass the comparison, and both apply.
type Serializer struct {
	store *Store
	clock clock.Clock
	locks *itemLocks
}

func NewSerializer(store *Store, clk clock.Clock) *Serializer {
	return &Serializer{
		store: store,
		clock: clk,
		locks: newItemLocks(),
	}
}

// BidResult is the outcome of an accepted bid. PreviousConn is the connection
// handle of the displaced leader, empty when the item had no leader yet.
type BidResult struct {
	Item         Snapshot
	PreviousConn string
}

// PlaceBid validates and applies a single bid attempt. A fast pre-check
// rejects obviously bad attempts without contending for the item's lock;
// the checks are then repeated after the lock is acquired, because the
// state read before (or while waiting for) the lock may be stale by the
// time this attempt's turn comes. The error a rejected caller sees is the
// re-check's reason, so it reflects the price actually current at that
// moment. Every failure is terminal for the attempt; nothing retries here.
func (s *Serializer) PlaceBid(itemID string, amount int64, bidderName, connID string) (BidResult, error) {
	it, err := s.store.GetItemState(itemID)
	if err != nil {
		return BidResult{}, err
	}
	if err = s.validate(&it, amount); err != nil {
		return BidResult{}, err
	}

	lock := s.locks.forItem(itemID)
	lock.Lock()
	defer lock.Unlock()

	it, err = s.store.GetItemState(itemID)
	if err != nil {
		return BidResult{}, err
	}
	if err = s.validate(&it, amount); err != nil {
		return BidResult{}, err
	}

	snapshot, previousConn, err := s.store.ApplyBid(itemID, bidderName, amount, connID, s.clock.Now())
	if err != nil {
		return BidResult{}, err
	}
	return BidResult{Item: snapshot, PreviousConn: previousConn}, nil
}

// validate enforces the acceptance conditions: the auction must be running
// and the amount must strictly exceed the current bid (ties rejected).
func (s *Serializer) validate(it *Item, amount int64) error {
	now := s.clock.Now()
	switch {
	case IsNotStarted(it):
		return fmt.Errorf("item %s: %w", it.ID, ErrAuctionNotStarted)
	case IsEnded(it, now):
		return fmt.Errorf("item %s: %w", it.ID, ErrAuctionEnded)
	case amount <= it.CurrentBid:
		return fmt.Errorf("%w: bid must be higher than the current bid of %s", ErrBidTooLow, util.FormatMoney(it.CurrentBid))
	}
	return nil
}

// lockFor exposes the item's exclusive section to the lifecycle controller,
// so a start command can never interleave with a bid being applied at the
// terminal moment of an auction.
func (s *Serializer) lockFor(itemID string) *sync.Mutex {
	return s.locks.forItem(itemID)
}
