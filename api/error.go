package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vantran/live-auction-BE/internal/auction"
)

func errorResponse(err error) gin.H {
	return gin.H{"success": false, "error": err.Error()}
}

// errorStatus maps core failures onto HTTP statuses. Domain rejections are
// 422; they are valid requests the auction state does not permit.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, auction.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, auction.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, auction.ErrAuctionActive),
		errors.Is(err, auction.ErrAuctionNotStarted),
		errors.Is(err, auction.ErrAuctionEnded),
		errors.Is(err, auction.ErrBidTooLow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
