package perftests

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	bidding "car-auction/internal/biddingService"
	model "car-auction/internal/models"
	"car-auction/internal/repository"
	"car-auction/utils"
)

func init() {
	utils.SetOutput(io.Discard)
}

// setupStore opens a temp SQLite store with numAuctions active listings and numUsers accounts
func setupStore(b *testing.B, numAuctions, numUsers int) (*repository.SQLStore, *bidding.BiddingService, []int64, []int64) {
	b.Helper()
	ctx := context.Background()

	store, err := repository.Open(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatalf("open store: %v", err)
	}
	b.Cleanup(func() { _ = store.Close() })
	if err := store.Initialize(ctx); err != nil {
		b.Fatalf("initialize: %v", err)
	}

	auctionIDs := make([]int64, numAuctions)
	for i := range auctionIDs {
		id, err := store.AddAuction(ctx, model.Auction{
			CarName:     fmt.Sprintf("Benchmark Car %d", i),
			StartingBid: 100,
			EndTime:     time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			b.Fatalf("add auction: %v", err)
		}
		auctionIDs[i] = id
	}

	userIDs := make([]int64, numUsers)
	for i := range userIDs {
		id, err := store.RegisterUser(ctx, fmt.Sprintf("bench%d@example.com", i), "pw", fmt.Sprintf("bench%d", i))
		if err != nil {
			b.Fatalf("register: %v", err)
		}
		userIDs[i] = id
	}

	return store, bidding.NewBiddingService(store, nil), auctionIDs, userIDs
}
