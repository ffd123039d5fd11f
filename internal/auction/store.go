package auction

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Store owns the authoritative collection of items and their bid histories.
// Every operation is individually atomic, but the store does not serialize
// across operations: callers that need a read-validate-apply sequence to be
// exclusive (the bid path, the start command) hold the per-item lock handed
// out by the Serializer. Items live for the process lifetime; there is no
// deletion path.
type Store struct {
	mu    sync.RWMutex
	order []string
	items map[string]*Item
	bids  map[string]map[string][]BidRecord
}

func NewStore() *Store {
	return &Store{
		items: make(map[string]*Item),
		bids:  make(map[string]map[string][]BidRecord),
	}
}

// CreateItem allocates a new item in the Not-Started state. The current bid
// starts at the starting price and the duration is consumed later, when the
// auction is started.
func (s *Store) CreateItem(title string, startingPrice, durationMinutes int64) (Snapshot, error) {
	if strings.TrimSpace(title) == "" {
		return Snapshot{}, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if startingPrice <= 0 {
		return Snapshot{}, fmt.Errorf("%w: starting price must be greater than 0", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return Snapshot{}, fmt.Errorf("%w: duration must be greater than 0", ErrInvalidInput)
	}

	it := &Item{
		ID:              shortuuid.New(),
		Title:           title,
		StartingPrice:   startingPrice,
		CurrentBid:      startingPrice,
		DurationMinutes: durationMinutes,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(it)
	return it.snapshot(), nil
}

// AddSeedItem inserts an item with a caller-chosen id. Used for the demo
// catalog loaded at boot.
func (s *Store) AddSeedItem(id, title string, startingPrice, durationMinutes int64) error {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(title) == "" || startingPrice <= 0 || durationMinutes <= 0 {
		return fmt.Errorf("%w: seed item %q is malformed", ErrInvalidInput, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return fmt.Errorf("%w: item id %s already exists", ErrInvalidInput, id)
	}
	s.insert(&Item{
		ID:              id,
		Title:           title,
		StartingPrice:   startingPrice,
		CurrentBid:      startingPrice,
		DurationMinutes: durationMinutes,
	})
	return nil
}

// insert must be called with s.mu held.
func (s *Store) insert(it *Item) {
	s.items[it.ID] = it
	s.order = append(s.order, it.ID)
	s.bids[it.ID] = make(map[string][]BidRecord)
}

// ListItems returns snapshots in insertion order.
func (s *Store) ListItems() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots := make([]Snapshot, 0, len(s.order))
	for _, id := range s.order {
		snapshots = append(snapshots, s.items[id].snapshot())
	}
	return snapshots
}

// GetItem returns a wire-shaped snapshot of one item.
func (s *Store) GetItem(id string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return Snapshot{}, fmt.Errorf("item %s: %w", id, ErrItemNotFound)
	}
	return it.snapshot(), nil
}

// GetItemState returns a value copy of the full item state for validation.
func (s *Store) GetItemState(id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return Item{}, fmt.Errorf("item %s: %w", id, ErrItemNotFound)
	}
	return it.copyState(), nil
}

// ApplyBid unconditionally records an accepted bid: it raises the current
// bid, replaces the leader, and appends to the bidder's history in one
// atomic step. Validation is the caller's responsibility; the Serializer is
// the only caller and performs it while holding the item's lock. The handle
// of the displaced leader is returned for targeted notification.
func (s *Store) ApplyBid(itemID, bidderName string, amount int64, connID string, ts time.Time) (Snapshot, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[itemID]
	if !ok {
		return Snapshot{}, "", fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
	}

	previousConn := it.LeaderConn
	it.CurrentBid = amount
	it.HighestBidder = bidderName
	it.LeaderConn = connID
	s.bids[itemID][bidderName] = append(s.bids[itemID][bidderName], BidRecord{Amount: amount, Timestamp: ts})

	return it.snapshot(), previousConn, nil
}

// ArmAuction sets the end time of an auction run. Called by the lifecycle
// controller under the item's lock.
func (s *Store) ArmAuction(itemID string, endTime time.Time) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[itemID]
	if !ok {
		return Snapshot{}, fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
	}
	it.AuctionEndTime = &endTime
	return it.snapshot(), nil
}

// UserBids returns each bidder's accepted bids for an item, in acceptance
// order. The returned map and slices are copies; history is never mutated
// through them.
func (s *Store) UserBids(itemID string) (map[string][]BidRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.bids[itemID]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
	}

	out := make(map[string][]BidRecord, len(history))
	for bidder, records := range history {
		cp := make([]BidRecord, len(records))
		copy(cp, records)
		out[bidder] = cp
	}
	return out, nil
}
