package bidding

import (
	"car-auction/internal/biddingerrors"
	"car-auction/internal/metrics"
	"car-auction/internal/models"
	"car-auction/internal/repository"
	"car-auction/utils"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// BiddingService defines the business logic for accounts, auctions and bidding
type BiddingService struct {
	repo    repository.AuctionStore
	metrics metrics.Recorder
}

// NewBiddingService creates a new BiddingService instance. A nil recorder disables metrics.
func NewBiddingService(repo repository.AuctionStore, recorder metrics.Recorder) *BiddingService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &BiddingService{
		repo:    repo,
		metrics: recorder,
	}
}

// RegisterUser creates an account and returns its id
func (s *BiddingService) RegisterUser(ctx context.Context, email, password, name string) (int64, error) {
	if strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("service: %w - all fields are required", biddingerrors.ErrInvalidRequest)
	}

	id, err := s.repo.RegisterUser(ctx, email, password, name)
	s.metrics.RecordRegistration(err == nil)
	if err != nil {
		return 0, fmt.Errorf("service: failed to register user %s: %w", email, err)
	}

	utils.Info("user registered", map[string]any{"user_id": id})
	return id, nil
}

// LoginUser authenticates by exact email and plaintext password match
func (s *BiddingService) LoginUser(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("service: %w - email and password are required", biddingerrors.ErrInvalidRequest)
	}

	user, err := s.repo.LoginUser(ctx, email, password)
	s.metrics.RecordLogin(err == nil)
	if err != nil {
		return models.User{}, fmt.Errorf("service: login failed: %w", err)
	}

	return user, nil
}

// ListActiveAuctions returns the active auctions with their bidder counts
func (s *BiddingService) ListActiveAuctions(ctx context.Context) ([]models.AuctionSummary, error) {
	auctions, err := s.repo.ListActiveAuctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// PlaceBid validates and records a user's bid on an auction
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, userID int64, amount float64) error {
	if err := validateBid(auctionID, userID, amount); err != nil {
		s.metrics.RecordBidRejected(rejectionReason(err))
		return err
	}

	if err := s.repo.PlaceBid(ctx, auctionID, userID, amount); err != nil {
		s.metrics.RecordBidRejected(rejectionReason(err))
		return fmt.Errorf("service: failed to place bid on auction %d by user %d: %w", auctionID, userID, err)
	}

	s.metrics.RecordBidAccepted(amount)
	utils.Info("bid placed", map[string]any{
		"auction_id": auctionID,
		"user_id":    userID,
		"amount":     amount,
	})
	return nil
}

// validateBid checks input presence before the store applies the auction rules.
// Negative amounts are left to the store, which rejects them as too low.
func validateBid(auctionID, userID int64, amount float64) error {
	if auctionID <= 0 || userID <= 0 {
		return fmt.Errorf("service: %w - missing auctionID or userID", biddingerrors.ErrInvalidBid)
	}
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("service: %w - missing bid amount", biddingerrors.ErrInvalidBid)
	}
	return nil
}

// GetBidsForAuction returns all bids for an auction, highest first
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID int64) ([]models.BidWithUser, error) {
	if auctionID <= 0 {
		return nil, fmt.Errorf("service: %w - invalid auction ID", biddingerrors.ErrInvalidBid)
	}

	bids, err := s.repo.ListBids(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %d: %w", auctionID, err)
	}

	return bids, nil
}

// SeedSampleData wipes the store and loads the demo listings
func (s *BiddingService) SeedSampleData(ctx context.Context) error {
	if err := s.repo.SeedSampleData(ctx); err != nil {
		return fmt.Errorf("service: failed to seed sample data: %w", err)
	}
	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return "invalid_bid"
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return "auction_not_found"
	case errors.Is(err, biddingerrors.ErrDuplicateBid):
		return "duplicate_bid"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return "bid_too_low"
	default:
		return "storage_failure"
	}
}
