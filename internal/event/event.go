package event

// Event types mirror the wire protocol the auction dashboard listens on.
const (
	TypeItemsUpdate = "items_update" // full catalog snapshot, after any create/start/accepted bid
	TypeBidUpdate   = "UPDATE_BID"   // new highest bid for one item
	TypeBidSuccess  = "bid_success"  // targeted confirmation for the bidder
	TypeBidError    = "bid_error"    // targeted rejection, never broadcast
	TypeServerTime  = "server_time"  // periodic clock sync tick
)

// Event is the envelope every outbound message is wrapped in.
type Event struct {
	Type string      `json:"event"`
	Data interface{} `json:"data"`
}

// Notifier fans state-change events out to connected observers. Broadcast
// reaches every client; SendTo delivers to a single connection handle and
// silently drops the event when that connection is gone.
type Notifier interface {
	Broadcast(event Event)
	SendTo(connID string, event Event)
}
