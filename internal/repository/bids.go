package repository

import (
	"car-auction/internal/biddingerrors"
	model "car-auction/internal/models"
	"car-auction/utils"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PlaceBid records a bid and raises the auction's current bid in one transaction.
//
// The transaction opens with the conditional UPDATE so the write lock is held
// before anything is read; the (auction_id, user_id) unique index rejects a
// second bid from the same user even under concurrent callers. When the
// UPDATE matches nothing the reason is classified inside the same transaction,
// in the order: auction missing or not active, duplicate bid, bid too low.
func (s *SQLStore) PlaceBid(ctx context.Context, auctionID, userID int64, amount float64) error {
	return s.withTx(ctx, "place bid", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE auctions SET current_bid = ? WHERE id = ? AND status = ? AND current_bid < ?`,
			amount, auctionID, model.StatusActive, amount,
		)
		if err != nil {
			return storageError("place bid: raise current bid", err)
		}
		updated, err := res.RowsAffected()
		if err != nil {
			return storageError("place bid: rows affected", err)
		}
		if updated == 0 {
			return classifyRejectedBid(ctx, tx, auctionID, userID, amount)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bids (auction_id, user_id, amount) VALUES (?, ?, ?)`,
			auctionID, userID, amount,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("place bid on auction %d by user %d: %w", auctionID, userID, biddingerrors.ErrDuplicateBid)
			}
			return storageError("place bid: insert bid", err)
		}
		return nil
	})
}

func classifyRejectedBid(ctx context.Context, q querier, auctionID, userID int64, amount float64) error {
	var currentBid float64
	err := q.QueryRowContext(ctx,
		`SELECT current_bid FROM auctions WHERE id = ? AND status = ?`,
		auctionID, model.StatusActive,
	).Scan(&currentBid)
	if errors.Is(err, sql.ErrNoRows) {
		utils.Debug("bid rejected: auction missing or not active", map[string]any{"auction_id": auctionID, "user_id": userID})
		return fmt.Errorf("place bid on auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return storageError("place bid: load auction", err)
	}

	var existing int
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bids WHERE auction_id = ? AND user_id = ?`,
		auctionID, userID,
	).Scan(&existing); err != nil {
		return storageError("place bid: check existing bid", err)
	}
	if existing > 0 {
		utils.Debug("bid rejected: user already bid", map[string]any{"auction_id": auctionID, "user_id": userID})
		return fmt.Errorf("place bid on auction %d by user %d: %w", auctionID, userID, biddingerrors.ErrDuplicateBid)
	}

	utils.Debug("bid rejected: amount not above current bid", map[string]any{
		"auction_id":  auctionID,
		"user_id":     userID,
		"amount":      amount,
		"current_bid": currentBid,
	})
	return fmt.Errorf("place bid on auction %d: %w - amount %.2f, current bid %.2f",
		auctionID, biddingerrors.ErrBidTooLow, amount, currentBid)
}

// ListBids returns all bids for an auction with bidder names, highest amount
// first. Equal amounts keep insertion order.
func (s *SQLStore) ListBids(ctx context.Context, auctionID int64) ([]model.BidWithUser, error) {
	var bids []model.BidWithUser
	err := s.withConn(ctx, "list bids", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT b.id, b.auction_id, b.user_id, b.amount, b.created_at, u.name AS user_name
			FROM bids b
			JOIN users u ON b.user_id = u.id
			WHERE b.auction_id = ?
			ORDER BY b.amount DESC, b.id ASC`,
			auctionID,
		)
		if err != nil {
			return storageError("list bids", err)
		}
		defer rows.Close()

		for rows.Next() {
			var b model.BidWithUser
			if err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, timestamp{&b.CreatedAt}, &b.UserName); err != nil {
				return storageError("list bids: scan", err)
			}
			bids = append(bids, b)
		}
		if err := rows.Err(); err != nil {
			return storageError("list bids: iterate", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bids, nil
}
