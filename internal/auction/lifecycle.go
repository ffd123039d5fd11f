package auction

import (
	"fmt"
	"time"

	"github.com/vantran/live-auction-BE/internal/clock"
)

// Controller drives the explicit start transition of the per-item state
// machine: NotStarted -> Active -> Ended. Ending is never an explicit
// transition; an item is Ended whenever the current time has reached its
// armed end time, so there is no stored flag to keep in sync.
type Controller struct {
	store          *Store
	clock          clock.Clock
	serializer     *Serializer
	defaultMinutes int64
}

func NewController(store *Store, clk clock.Clock, serializer *Serializer, defaultMinutes int64) *Controller {
	return &Controller{
		store:          store,
		clock:          clk,
		serializer:     serializer,
		defaultMinutes: defaultMinutes,
	}
}

// StartAuction arms the item's end time at now plus the chosen duration.
// The duration override from the request wins over the duration stored at
// creation, which wins over the configured default. Starting an item whose
// auction is still running fails and leaves the end time untouched.
//
// An item whose auction already ended can be started again, which re-arms
// the end time and reopens bidding. That matches the behavior this system
// replaces; callers wanting one-shot auctions must not issue a second start.
//
// The item's exclusive section is held across the check and the arm, so a
// start cannot race a bid being applied in the auction's final moment.
func (c *Controller) StartAuction(itemID string, durationMinutes *int64) (Snapshot, error) {
	lock := c.serializer.lockFor(itemID)
	lock.Lock()
	defer lock.Unlock()

	it, err := c.store.GetItemState(itemID)
	if err != nil {
		return Snapshot{}, err
	}

	now := c.clock.Now()
	if IsActive(&it, now) {
		return Snapshot{}, fmt.Errorf("item %s: %w", itemID, ErrAuctionActive)
	}

	minutes := c.defaultMinutes
	if it.DurationMinutes > 0 {
		minutes = it.DurationMinutes
	}
	if durationMinutes != nil {
		minutes = *durationMinutes
	}
	if minutes <= 0 {
		return Snapshot{}, fmt.Errorf("%w: duration must be greater than 0", ErrInvalidInput)
	}

	endTime := now.Add(time.Duration(minutes) * time.Minute)
	return c.store.ArmAuction(itemID, endTime)
}
