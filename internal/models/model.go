package models

import "time"

// StatusActive is the only auction status that accepts bids
const StatusActive = "active"

// User represents a registered marketplace account.
// Password is stored and compared in plaintext.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Auction represents a car listing with a rising current bid
type Auction struct {
	ID             int64     `json:"id"`
	CarName        string    `json:"car_name"`
	CarDescription *string   `json:"car_description"`
	ImageURL       *string   `json:"image_url"`
	StartingBid    float64   `json:"starting_bid"`
	CurrentBid     float64   `json:"current_bid"`
	EndTime        time.Time `json:"end_time"`
	CreatedAt      time.Time `json:"created_at"`
	Status         string    `json:"status"`
}

// AuctionSummary is an active auction annotated with its distinct bidder count
type AuctionSummary struct {
	Auction
	BidderCount int `json:"bidder_count"`
}

// Bid represents a user's accepted bid on an auction
type Bid struct {
	ID        int64     `json:"id"`
	AuctionID int64     `json:"auction_id"`
	UserID    int64     `json:"user_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// BidWithUser is a bid joined with the bidder's display name
type BidWithUser struct {
	Bid
	UserName string `json:"user_name"`
}
