package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vantran/live-auction-BE/internal/event"
	"github.com/vantran/live-auction-BE/internal/monitoring"
)

// listItems returns snapshots of every item in insertion order. The
// snapshot may be stale the moment it is observed; clients get authoritative
// updates over the websocket.
func (server *Server) listItems(c *gin.Context) {
	c.JSON(http.StatusOK, server.store.ListItems())
}

// serverTime reports the server clock in unix milliseconds so clients can
// render countdowns against the clock that actually decides expiry.
func (server *Server) serverTime(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"serverTime": server.clock.Now().UnixMilli()})
}

// getUserBids returns each bidder's accepted bid history for an item. A
// bidder's commitment is the maximum of their amounts, not the sum; clients
// derive it from the raw records.
func (server *Server) getUserBids(c *gin.Context) {
	itemID := c.Param("id")

	userBids, err := server.store.UserBids(itemID)
	if err != nil {
		c.JSON(errorStatus(err), errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "userBids": userBids})
}

type createItemRequest struct {
	Title         string `json:"title" binding:"required"`
	StartingPrice int64  `json:"startingPrice" binding:"required,gt=0"`
	Duration      int64  `json:"duration" binding:"required,gt=0"`
}

// createItem adds a new item in the Not-Started state and announces the
// changed catalog to every connected client.
func (server *Server) createItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	item, err := server.store.CreateItem(req.Title, req.StartingPrice, req.Duration)
	if err != nil {
		c.JSON(errorStatus(err), errorResponse(err))
		return
	}

	monitoring.ItemsCreatedTotal.Inc()
	server.hub.Broadcast(event.Event{Type: event.TypeItemsUpdate, Data: server.store.ListItems()})

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

type startAuctionRequest struct {
	Duration *int64 `json:"duration" binding:"omitempty,gt=0"`
}

// startAuction arms the item's end time. The optional duration in the body
// overrides the duration stored at creation.
func (server *Server) startAuction(c *gin.Context) {
	itemID := c.Param("id")

	var req startAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	item, err := server.controller.StartAuction(itemID, req.Duration)
	if err != nil {
		c.JSON(errorStatus(err), errorResponse(err))
		return
	}

	monitoring.AuctionsStartedTotal.Inc()
	server.hub.Broadcast(event.Event{Type: event.TypeItemsUpdate, Data: server.store.ListItems()})

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}
