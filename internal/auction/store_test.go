package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateItemRoundTrip(t *testing.T) {
	store := NewStore()

	item, err := store.CreateItem("Vase", 75, 5)
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Vase", item.Title)
	assert.Equal(t, int64(75), item.StartingPrice)
	assert.Equal(t, int64(75), item.CurrentBid)
	assert.Equal(t, int64(5), item.DurationMinutes)
	assert.Nil(t, item.AuctionEndTime)
	assert.Nil(t, item.HighestBidder)

	items := store.ListItems()
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, int64(75), items[0].CurrentBid)
	assert.Nil(t, items[0].AuctionEndTime)
}

func TestStore_CreateItemValidation(t *testing.T) {
	store := NewStore()

	cases := []struct {
		name     string
		title    string
		price    int64
		duration int64
	}{
		{"empty title", "", 50, 5},
		{"whitespace title", "   ", 50, 5},
		{"zero price", "Watch", 0, 5},
		{"negative price", "Watch", -10, 5},
		{"zero duration", "Watch", 50, 0},
		{"negative duration", "Watch", 50, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.CreateItem(tc.title, tc.price, tc.duration)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Empty(t, store.ListItems())
}

func TestStore_ListItemsInsertionOrder(t *testing.T) {
	store := NewStore()

	first, err := store.CreateItem("First", 10, 1)
	require.NoError(t, err)
	second, err := store.CreateItem("Second", 20, 1)
	require.NoError(t, err)
	third, err := store.CreateItem("Third", 30, 1)
	require.NoError(t, err)

	items := store.ListItems()
	require.Len(t, items, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestStore_GetItemNotFound(t *testing.T) {
	store := NewStore()

	_, err := store.GetItem("missing")
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = store.GetItemState("missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestStore_AddSeedItem(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.AddSeedItem("1", "Vintage Watch", 50, 1))

	err := store.AddSeedItem("1", "Duplicate", 60, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	item, err := store.GetItem("1")
	require.NoError(t, err)
	assert.Equal(t, "Vintage Watch", item.Title)
}

func TestStore_ApplyBidUpdatesLeaderAndHistory(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddSeedItem("1", "Vintage Watch", 50, 1))

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	snapshot, previousConn, err := store.ApplyBid("1", "alice", 60, "conn-a", ts)
	require.NoError(t, err)
	assert.Empty(t, previousConn)
	assert.Equal(t, int64(60), snapshot.CurrentBid)
	require.NotNil(t, snapshot.HighestBidder)
	assert.Equal(t, "alice", *snapshot.HighestBidder)

	snapshot, previousConn, err = store.ApplyBid("1", "bob", 70, "conn-b", ts.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "conn-a", previousConn)
	assert.Equal(t, int64(70), snapshot.CurrentBid)

	bids, err := store.UserBids("1")
	require.NoError(t, err)
	require.Len(t, bids["alice"], 1)
	require.Len(t, bids["bob"], 1)
	assert.Equal(t, int64(60), bids["alice"][0].Amount)
	assert.Equal(t, ts, bids["alice"][0].Timestamp)
}

func TestStore_UserBidsUnknownItem(t *testing.T) {
	store := NewStore()

	_, err := store.UserBids("missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestStore_UserBidsReturnsCopies(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddSeedItem("1", "Vintage Watch", 50, 1))

	_, _, err := store.ApplyBid("1", "alice", 60, "conn-a", time.Now())
	require.NoError(t, err)

	bids, err := store.UserBids("1")
	require.NoError(t, err)
	bids["alice"][0].Amount = 999

	fresh, err := store.UserBids("1")
	require.NoError(t, err)
	assert.Equal(t, int64(60), fresh["alice"][0].Amount)
}
