package repository

import (
	"car-auction/internal/biddingerrors"
	model "car-auction/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const auctionColumns = `a.id, a.car_name, a.car_description, a.image_url, a.starting_bid, a.current_bid, a.end_time, a.created_at, COALESCE(a.status, '')`

// ListActiveAuctions returns every active auction with the number of distinct users who bid on it
func (s *SQLStore) ListActiveAuctions(ctx context.Context) ([]model.AuctionSummary, error) {
	var auctions []model.AuctionSummary
	err := s.withConn(ctx, "list active auctions", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT `+auctionColumns+`, COUNT(DISTINCT b.user_id) AS bidder_count
			FROM auctions a
			LEFT JOIN bids b ON a.id = b.auction_id
			WHERE a.status = ?
			GROUP BY a.id
			ORDER BY a.id`,
			model.StatusActive,
		)
		if err != nil {
			return storageError("list active auctions", err)
		}
		defer rows.Close()

		for rows.Next() {
			var summary model.AuctionSummary
			dest := append(auctionScanDest(&summary.Auction), &summary.BidderCount)
			if err := rows.Scan(dest...); err != nil {
				return storageError("list active auctions: scan", err)
			}
			auctions = append(auctions, summary)
		}
		if err := rows.Err(); err != nil {
			return storageError("list active auctions: iterate", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return auctions, nil
}

// getAuction returns a single auction regardless of status
func (s *SQLStore) getAuction(ctx context.Context, auctionID int64) (model.Auction, error) {
	var auction model.Auction
	err := s.withConn(ctx, "get auction", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			`SELECT `+auctionColumns+` FROM auctions a WHERE a.id = ?`, auctionID,
		).Scan(auctionScanDest(&auction)...)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("get auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
		}
		if err != nil {
			return storageError("get auction", err)
		}
		return nil
	})
	if err != nil {
		return model.Auction{}, err
	}
	return auction, nil
}

// AddAuction inserts an auction listing and returns its id. Listings are
// normally created by SeedSampleData; this is exposed for bootstrap and tests.
func (s *SQLStore) AddAuction(ctx context.Context, auction model.Auction) (int64, error) {
	var id int64
	err := s.withConn(ctx, "add auction", func(conn *sql.Conn) error {
		var err error
		id, err = insertAuction(ctx, conn, auction)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func insertAuction(ctx context.Context, ex execer, auction model.Auction) (int64, error) {
	status := auction.Status
	if status == "" {
		status = model.StatusActive
	}
	current := auction.CurrentBid
	if current < auction.StartingBid {
		current = auction.StartingBid
	}

	res, err := ex.ExecContext(ctx,
		`INSERT INTO auctions (car_name, car_description, image_url, starting_bid, current_bid, end_time, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		auction.CarName,
		toNullString(auction.CarDescription),
		toNullString(auction.ImageURL),
		auction.StartingBid,
		current,
		formatTimestamp(auction.EndTime),
		status,
	)
	if err != nil {
		return 0, storageError(fmt.Sprintf("insert auction %q", auction.CarName), err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError("insert auction: last insert id", err)
	}
	return id, nil
}

func auctionScanDest(a *model.Auction) []any {
	return []any{
		&a.ID,
		&a.CarName,
		optionalText{&a.CarDescription},
		optionalText{&a.ImageURL},
		&a.StartingBid,
		&a.CurrentBid,
		timestamp{&a.EndTime},
		timestamp{&a.CreatedAt},
		&a.Status,
	}
}
