package integrationtests

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	model "car-auction/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func placeBid(t *testing.T, router *gin.Engine, auctionID, userID int64, amount float64) (map[string]any, int) {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost,
		fmt.Sprintf("/api/auctions/%d/bid", auctionID),
		map[string]any{"user_id": userID, "amount": amount})
	return resp, w.Code
}

func listAuctions(t *testing.T, router *gin.Engine) []map[string]any {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/api/auctions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	for _, a := range resp["data"].([]any) {
		out = append(out, a.(map[string]any))
	}
	return out
}

func listBids(t *testing.T, router *gin.Engine, auctionID int64) []map[string]any {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, fmt.Sprintf("/api/auctions/%d/bids", auctionID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := []map[string]any{}
	for _, b := range resp["data"].([]any) {
		out = append(out, b.(map[string]any))
	}
	return out
}

// Register and Login Tests
func TestRegisterAndLogin(t *testing.T) {
	router, _ := SetupTestRouter(t)

	userID := RegisterUser(t, router, "ann")
	require.Equal(t, int64(1), userID)

	tests := []struct {
		name       string
		path       string
		request    any
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "Duplicate_Email",
			path:       "/api/register",
			request:    map[string]any{"name": "Other", "email": "ann@example.com", "password": "x"},
			wantStatus: http.StatusConflict,
			wantMsg:    "Email already exists",
		},
		{
			name:       "Register_Missing_Field",
			path:       "/api/register",
			request:    map[string]any{"email": "bo@example.com", "password": "x"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "All fields are required",
		},
		{
			name:       "Login_Success",
			path:       "/api/login",
			request:    map[string]any{"email": "ann@example.com", "password": "pw-ann"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Login_Wrong_Password",
			path:       "/api/login",
			request:    map[string]any{"email": "ann@example.com", "password": "nope"},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "Login_Email_Case_Sensitive",
			path:       "/api/login",
			request:    map[string]any{"email": "ANN@example.com", "password": "pw-ann"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Invalid_JSON",
			path:       "/api/login",
			request:    "{email: 'missing quotes'}",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, tt.path, tt.request)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, resp["message"])
			}
			if tt.wantStatus == http.StatusOK {
				data := resp["data"].(map[string]any)
				require.Equal(t, float64(userID), data["id"])
				require.Equal(t, "ann", data["name"])
				require.NotContains(t, data, "password")
			}
		})
	}
}

// Walks the seeded Camry auction through accepted and rejected bids
func TestSeededCamryScenario(t *testing.T) {
	router, _ := SetupTestRouter(t)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/api/init-data", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Sample data added", resp["message"])

	auctions := listAuctions(t, router)
	require.Len(t, auctions, 3)
	camry := auctions[0]
	require.Equal(t, "Toyota Camry 2022", camry["car_name"])
	require.Equal(t, float64(15000), camry["current_bid"])
	require.Equal(t, float64(0), camry["bidder_count"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/api/login",
		map[string]any{"email": "test@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	testUser := int64(resp["data"].(map[string]any)["id"].(float64))
	other := RegisterUser(t, router, "bo")

	camryID := int64(camry["id"].(float64))

	steps := []struct {
		name       string
		userID     int64
		amount     float64
		wantStatus int
		wantMsg    string
	}{
		{"First_Bid", testUser, 16000, http.StatusCreated, "bid placed successfully"},
		{"Equal_To_Current", other, 16000, http.StatusConflict, "Bid must be higher than current bid"},
		{"Second_Bid_Same_User", testUser, 17000, http.StatusConflict, "You have already placed a bid"},
		{"Outbid", other, 18000, http.StatusCreated, "bid placed successfully"},
	}
	for _, s := range steps {
		resp, code := placeBid(t, router, camryID, s.userID, s.amount)
		require.Equal(t, s.wantStatus, code, s.name)
		require.Equal(t, s.wantMsg, resp["message"], s.name)
	}

	bids := listBids(t, router, camryID)
	require.Len(t, bids, 2)
	require.Equal(t, float64(18000), bids[0]["amount"])
	require.Equal(t, "bo", bids[0]["user_name"])
	require.Equal(t, float64(16000), bids[1]["amount"])
	require.Equal(t, "Test User", bids[1]["user_name"])

	camry = listAuctions(t, router)[0]
	require.Equal(t, float64(18000), camry["current_bid"])
	require.Equal(t, float64(2), camry["bidder_count"])
}

func TestPlaceBidRejections(t *testing.T) {
	router, store := SetupTestRouter(t)
	ctx := context.Background()

	userID := RegisterUser(t, router, "ann")
	activeID, err := store.AddAuction(ctx, model.Auction{
		CarName:     "Active",
		StartingBid: 1000,
		EndTime:     time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	closedID, err := store.AddAuction(ctx, model.Auction{
		CarName:     "Closed",
		StartingBid: 1000,
		EndTime:     time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:      "ended",
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		auctionID  int64
		userID     int64
		amount     float64
		wantStatus int
	}{
		{"Unknown_Auction", 999, userID, 5000, http.StatusNotFound},
		{"Closed_Auction", closedID, userID, 5000, http.StatusNotFound},
		{"Below_Starting_Bid", activeID, userID, 500, http.StatusConflict},
		{"Negative_Amount", activeID, userID, -10, http.StatusConflict},
		{"Zero_Amount", activeID, userID, 0, http.StatusBadRequest},
		{"Unknown_User", activeID, 999, 5000, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code := placeBid(t, router, tt.auctionID, tt.userID, tt.amount)
			require.Equal(t, tt.wantStatus, code)
		})
	}

	require.Empty(t, listBids(t, router, activeID))
	require.Empty(t, listBids(t, router, 999))
	require.Len(t, listAuctions(t, router), 1)
}

// Concurrent bidders over HTTP keep the auction consistent
func TestConcurrentBidsThroughAPI(t *testing.T) {
	router, store := SetupTestRouter(t)

	const bidders = 16
	const start = 20000.0
	auctionID, err := store.AddAuction(context.Background(), model.Auction{
		CarName:     "Contested",
		StartingBid: start,
		EndTime:     time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	userIDs := make([]int64, bidders)
	for i := range userIDs {
		userIDs[i] = RegisterUser(t, router, fmt.Sprintf("racer%d", i))
	}

	var accepted atomic.Int64
	var g errgroup.Group
	for i, userID := range userIDs {
		userID := userID
		amount := start + float64(i+1)*250
		g.Go(func() error {
			_, code := placeBid(t, router, auctionID, userID, amount)
			switch code {
			case http.StatusCreated:
				accepted.Add(1)
				return nil
			case http.StatusConflict:
				return nil
			default:
				return fmt.Errorf("user %d: unexpected status %d", userID, code)
			}
		})
	}
	require.NoError(t, g.Wait())

	bids := listBids(t, router, auctionID)
	require.Len(t, bids, int(accepted.Load()))
	require.Equal(t, start+bidders*250, bids[0]["amount"])

	auctions := listAuctions(t, router)
	require.Len(t, auctions, 1)
	require.Equal(t, start+bidders*250, auctions[0]["current_bid"])
	require.Equal(t, float64(accepted.Load()), auctions[0]["bidder_count"])
}
