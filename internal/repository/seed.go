package repository

import (
	model "car-auction/internal/models"
	"car-auction/utils"
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SampleUser is the account created by SeedSampleData
var SampleUser = model.User{
	Email:    "test@example.com",
	Password: "password123",
	Name:     "Test User",
}

// SampleAuctions returns the listings created by SeedSampleData
func SampleAuctions() []model.Auction {
	return []model.Auction{
		sampleAuction("Toyota Camry 2022", "Like new with low mileage",
			"https://images.unsplash.com/photo-1621007947382-bb3c3994e3fb?w=400", 15000,
			time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)),
		sampleAuction("Ford Mustang GT", "Brand new sports car",
			"https://images.unsplash.com/photo-1583121274602-3e2820c69888?w=400", 45000,
			time.Date(2024, time.December, 25, 23, 59, 59, 0, time.UTC)),
		sampleAuction("Honda Civic 2021", "Well maintained, great condition",
			"https://images.unsplash.com/photo-1552519507-da3b142c6e3d?w=400", 20000,
			time.Date(2024, time.December, 20, 23, 59, 59, 0, time.UTC)),
	}
}

func sampleAuction(name, description, imageURL string, startingBid float64, endTime time.Time) model.Auction {
	return model.Auction{
		CarName:        name,
		CarDescription: &description,
		ImageURL:       &imageURL,
		StartingBid:    startingBid,
		CurrentBid:     startingBid,
		EndTime:        endTime,
		Status:         model.StatusActive,
	}
}

// SeedSampleData drops all three tables, recreates them and inserts the sample
// auctions and user. Every existing user, auction and bid is lost.
func (s *SQLStore) SeedSampleData(ctx context.Context) error {
	return s.withTx(ctx, "seed sample data", func(tx *sql.Tx) error {
		utils.Warn("Dropping existing tables", map[string]any{"path": s.path})
		if err := dropSchema(ctx, tx); err != nil {
			return err
		}

		if err := createSchema(ctx, tx); err != nil {
			return err
		}

		auctions := SampleAuctions()
		for _, auction := range auctions {
			if _, err := insertAuction(ctx, tx, auction); err != nil {
				return fmt.Errorf("seed sample data: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (email, password, name) VALUES (?, ?, ?)`,
			SampleUser.Email, SampleUser.Password, SampleUser.Name,
		); err != nil {
			return storageError("seed sample data: insert user", err)
		}

		utils.Info("Sample data added", map[string]any{
			"auctions": len(auctions),
			"users":    1,
		})
		return nil
	})
}
