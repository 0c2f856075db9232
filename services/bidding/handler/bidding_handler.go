package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"car-auction/internal/biddingerrors"
	model "car-auction/internal/models"
	"car-auction/services/bidding/helpers"
	"car-auction/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_handler.go -package=handler

type BiddingServiceInterface interface {
	RegisterUser(ctx context.Context, email, password, name string) (int64, error)
	LoginUser(ctx context.Context, email, password string) (model.User, error)
	ListActiveAuctions(ctx context.Context) ([]model.AuctionSummary, error)
	PlaceBid(ctx context.Context, auctionID, userID int64, amount float64) error
	GetBidsForAuction(ctx context.Context, auctionID int64) ([]model.BidWithUser, error)
	SeedSampleData(ctx context.Context) error
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// respondError maps err to a status, writes the error body and logs at a level matching the status
func respondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// RegisterHandler handles POST /api/register
func (h *BiddingHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err, helpers.MsgRegisterFieldsRequired)
		return
	}

	userID, err := h.service.RegisterUser(c.Request.Context(), req.Email, req.Password, req.Name)
	if errors.Is(err, biddingerrors.ErrInvalidRequest) {
		helpers.HandleBindError(c, "RegisterHandler", err, helpers.MsgRegisterFieldsRequired)
		return
	}
	if err != nil {
		respondError(c, "RegisterHandler", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.RegisterResponse{UserID: userID}, "user registered successfully")
	helpers.LogSuccess("RegisterHandler", "user registered successfully", map[string]any{"user_id": userID})
}

// LoginHandler handles POST /api/login
func (h *BiddingHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err, helpers.MsgLoginFieldsRequired)
		return
	}

	user, err := h.service.LoginUser(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, biddingerrors.ErrInvalidRequest) {
		helpers.HandleBindError(c, "LoginHandler", err, helpers.MsgLoginFieldsRequired)
		return
	}
	if err != nil {
		respondError(c, "LoginHandler", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToUserResponse(user), "login successful")
	helpers.LogSuccess("LoginHandler", "login successful", map[string]any{"user_id": user.ID})
}

// ListAuctionsHandler handles GET /api/auctions
func (h *BiddingHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ListActiveAuctions(c.Request.Context())
	if err != nil {
		respondError(c, "ListAuctionsHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponses(auctions), "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{"count": len(auctions)})
}

// PlaceBidHandler handles POST /api/auctions/:id/bid
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	auctionID, err := helpers.ParseAuctionID(c)
	if err != nil {
		respondError(c, "PlaceBidHandler", err, nil)
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err, helpers.MsgBidFieldsRequired)
		return
	}

	if err := h.service.PlaceBid(c.Request.Context(), auctionID, req.UserID, req.Amount); err != nil {
		respondError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"user_id":    req.UserID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, nil, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"auction_id": auctionID,
		"user_id":    req.UserID,
		"amount":     req.Amount,
	})
}

// GetBidsHandler handles GET /api/auctions/:id/bids
func (h *BiddingHandler) GetBidsHandler(c *gin.Context) {
	auctionID, err := helpers.ParseAuctionID(c)
	if err != nil {
		respondError(c, "GetBidsHandler", err, nil)
		return
	}

	bids, err := h.service.GetBidsForAuction(c.Request.Context(), auctionID)
	if err != nil {
		respondError(c, "GetBidsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// InitDataHandler handles POST /api/init-data. It wipes every table.
func (h *BiddingHandler) InitDataHandler(c *gin.Context) {
	if err := h.service.SeedSampleData(c.Request.Context()); err != nil {
		respondError(c, "InitDataHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "Sample data added")
	helpers.LogSuccess("InitDataHandler", "sample data added", nil)
}
