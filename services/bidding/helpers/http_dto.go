package helpers

import (
	"time"

	model "car-auction/internal/models"
)

// Request/Response DTOs
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PlaceBidRequest struct {
	UserID int64   `json:"user_id" binding:"required,gt=0"`
	Amount float64 `json:"amount" binding:"required"`
}

type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

// UserResponse omits the stored password
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type AuctionResponse struct {
	ID             int64   `json:"id"`
	CarName        string  `json:"car_name"`
	CarDescription *string `json:"car_description"`
	ImageURL       *string `json:"image_url"`
	StartingBid    float64 `json:"starting_bid"`
	CurrentBid     float64 `json:"current_bid"`
	EndTime        string  `json:"end_time"`
	CreatedAt      string  `json:"created_at"`
	Status         string  `json:"status"`
	BidderCount    int     `json:"bidder_count"`
}

type BidResponse struct {
	ID        int64   `json:"id"`
	AuctionID int64   `json:"auction_id"`
	UserID    int64   `json:"user_id"`
	UserName  string  `json:"user_name"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ToUserResponse converts a stored user into its public form
func ToUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

// ToAuctionResponses converts auction summaries, never returning nil
func ToAuctionResponses(auctions []model.AuctionSummary) []AuctionResponse {
	out := make([]AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		out = append(out, AuctionResponse{
			ID:             a.ID,
			CarName:        a.CarName,
			CarDescription: a.CarDescription,
			ImageURL:       a.ImageURL,
			StartingBid:    a.StartingBid,
			CurrentBid:     a.CurrentBid,
			EndTime:        formatTime(a.EndTime),
			CreatedAt:      formatTime(a.CreatedAt),
			Status:         a.Status,
			BidderCount:    a.BidderCount,
		})
	}
	return out
}

// ToBidResponses converts bids with bidder names, never returning nil
func ToBidResponses(bids []model.BidWithUser) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, BidResponse{
			ID:        b.ID,
			AuctionID: b.AuctionID,
			UserID:    b.UserID,
			UserName:  b.UserName,
			Amount:    b.Amount,
			CreatedAt: formatTime(b.CreatedAt),
		})
	}
	return out
}
