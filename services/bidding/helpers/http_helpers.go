package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"car-auction/internal/biddingerrors"
	"car-auction/utils"

	"github.com/gin-gonic/gin"
)

// Client-facing messages for missing request fields
const (
	MsgRegisterFieldsRequired = "All fields are required"
	MsgLoginFieldsRequired    = "Email and password are required"
	MsgBidFieldsRequired      = "User ID and amount are required"
)

// HandleBindError sends a 400 with message for a payload that failed binding or validation
func HandleBindError(c *gin.Context, handlerName string, err error, message string) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, message)
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// ParseAuctionID reads the :id path parameter as a positive integer
func ParseAuctionID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w - auction id %q", biddingerrors.ErrInvalidRequest, raw)
	}
	return id, nil
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrDuplicateEmail):
		return http.StatusConflict, "Email already exists"
	case errors.Is(err, biddingerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "Auction not found or ended"
	case errors.Is(err, biddingerrors.ErrDuplicateBid):
		return http.StatusConflict, "You have already placed a bid"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusConflict, "Bid must be higher than current bid"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
