package api

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vantran/live-auction-BE/internal/auction"
	"github.com/vantran/live-auction-BE/internal/event"
	"github.com/vantran/live-auction-BE/internal/monitoring"
)

const eventBidPlaced = "BID_PLACED"

type inboundMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type placeBidPayload struct {
	ItemID    string `json:"itemId"`
	BidAmount int64  `json:"bidAmount"`
	UserName  string `json:"userName"`
}

// serveWS upgrades the connection and wires the client into the hub. The
// client's connection ID is the actor handle attached to its bids.
func (server *Server) serveWS(c *gin.Context) {
	conn, err := server.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := event.NewClient(conn)
	server.hub.Register(client)
	go client.WritePump()

	// New clients get the current catalog right away.
	server.hub.SendTo(client.ID, event.Event{Type: event.TypeItemsUpdate, Data: server.store.ListItems()})

	go client.ReadPump(server.hub, func(payload []byte) {
		server.handleClientMessage(client, payload)
	})
}

func (server *Server) handleClientMessage(client *event.Client, payload []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		server.hub.SendTo(client.ID, event.Event{
			Type: event.TypeBidError,
			Data: gin.H{"message": "malformed message"},
		})
		return
	}

	switch msg.Event {
	case eventBidPlaced:
		server.handlePlaceBid(client, msg.Data)
	default:
		log.Debug().Str("event", msg.Event).Str("conn_id", client.ID).Msg("ignoring unknown client event")
	}
}

// handlePlaceBid runs one bid attempt through the serializer and relays the
// outcome: global broadcasts on acceptance, a targeted error on rejection.
// The rejection message carries the reason that was true when the bid got
// its turn, which may differ from what the bidder saw when submitting.
func (server *Server) handlePlaceBid(client *event.Client, data json.RawMessage) {
	var req placeBidPayload
	if err := json.Unmarshal(data, &req); err != nil || req.ItemID == "" || req.UserName == "" || req.BidAmount == 0 {
		server.hub.SendTo(client.ID, event.Event{
			Type: event.TypeBidError,
			Data: gin.H{"message": "missing required fields: itemId, bidAmount, userName"},
		})
		return
	}

	result, err := server.serializer.PlaceBid(req.ItemID, req.BidAmount, req.UserName, client.ID)
	if err != nil {
		monitoring.BidsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		server.hub.SendTo(client.ID, event.Event{
			Type: event.TypeBidError,
			Data: gin.H{"itemId": req.ItemID, "message": err.Error()},
		})
		return
	}

	monitoring.BidsAcceptedTotal.Inc()

	server.hub.Broadcast(event.Event{
		Type: event.TypeBidUpdate,
		Data: gin.H{
			"itemId":         result.Item.ID,
			"currentBid":     result.Item.CurrentBid,
			"highestBidder":  result.Item.HighestBidder,
			"bidderId":       result.Item.LeaderConn,
			"previousBidder": result.PreviousConn,
		},
	})
	server.hub.Broadcast(event.Event{Type: event.TypeItemsUpdate, Data: server.store.ListItems()})

	server.hub.SendTo(client.ID, event.Event{
		Type: event.TypeBidSuccess,
		Data: gin.H{"itemId": result.Item.ID, "message": "Bid placed successfully"},
	})
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, auction.ErrItemNotFound):
		return "not_found"
	case errors.Is(err, auction.ErrAuctionNotStarted):
		return "not_started"
	case errors.Is(err, auction.ErrAuctionEnded):
		return "ended"
	case errors.Is(err, auction.ErrBidTooLow):
		return "bid_too_low"
	default:
		return "other"
	}
}
