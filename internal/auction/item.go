package auction

import (
	"time"

	"github.com/vantran/live-auction-BE/internal/util"
)

// Item is the unit of auction. CurrentBid never decreases; AuctionEndTime is
// nil until the auction is started and, for a given run, never moves once set.
// LeaderConn is the volatile connection handle of the current leader, used
// only for targeted notifications; it carries no meaning across reconnects.
type Item struct {
	ID              string
	Title           string
	StartingPrice   int64
	CurrentBid      int64
	DurationMinutes int64
	AuctionEndTime  *time.Time
	HighestBidder   string
	LeaderConn      string
}

// BidRecord is one accepted bid in an item's append-only history.
type BidRecord struct {
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is a read-only copy of item state, shaped for the wire. It may be
// stale by the time it is observed; only the bid path reads authoritative
// state. AuctionEndTime is unix milliseconds so browser clients can compare
// it against the broadcast server time directly.
type Snapshot struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	StartingPrice   int64   `json:"startingPrice"`
	CurrentBid      int64   `json:"currentBid"`
	DurationMinutes int64   `json:"duration"`
	AuctionEndTime  *int64  `json:"auctionEndTime"`
	HighestBidder   *string `json:"highestBidder"`
	LeaderConn      *string `json:"bidderId"`
}

func (it *Item) snapshot() Snapshot {
	s := Snapshot{
		ID:              it.ID,
		Title:           it.Title,
		StartingPrice:   it.StartingPrice,
		CurrentBid:      it.CurrentBid,
		DurationMinutes: it.DurationMinutes,
	}
	if it.AuctionEndTime != nil {
		s.AuctionEndTime = util.Int64Pointer(it.AuctionEndTime.UnixMilli())
	}
	if it.HighestBidder != "" {
		s.HighestBidder = util.StringPointer(it.HighestBidder)
	}
	if it.LeaderConn != "" {
		s.LeaderConn = util.StringPointer(it.LeaderConn)
	}
	return s
}

// copyState returns a value copy that shares no pointers with the original.
func (it *Item) copyState() Item {
	cp := *it
	if it.AuctionEndTime != nil {
		t := *it.AuctionEndTime
		cp.AuctionEndTime = &t
	}
	return cp
}

// The lifecycle states are never stored; they are always derived from
// AuctionEndTime and the current time so stored state cannot drift from
// wall-clock truth.

func IsNotStarted(it *Item) bool {
	return it.AuctionEndTime == nil
}

func IsActive(it *Item, now time.Time) bool {
	return it.AuctionEndTime != nil && now.Before(*it.AuctionEndTime)
}

func IsEnded(it *Item, now time.Time) bool {
	return it.AuctionEndTime != nil && !now.Before(*it.AuctionEndTime)
}
