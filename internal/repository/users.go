package repository

import (
	"car-auction/internal/biddingerrors"
	model "car-auction/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// RegisterUser inserts a new user and returns its id.
// No normalisation or strength checks are applied to email or password.
func (s *SQLStore) RegisterUser(ctx context.Context, email, password, name string) (int64, error) {
	var id int64
	err := s.withConn(ctx, "register user", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx,
			`INSERT INTO users (email, password, name) VALUES (?, ?, ?)`,
			email, password, name,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("register user %s: %w", email, biddingerrors.ErrDuplicateEmail)
			}
			return storageError("register user", err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			return storageError("register user: last insert id", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// LoginUser returns the user whose email and plaintext password both match exactly
func (s *SQLStore) LoginUser(ctx context.Context, email, password string) (model.User, error) {
	var user model.User
	err := s.withConn(ctx, "login user", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			`SELECT id, email, password, name, created_at FROM users WHERE email = ? AND password = ?`,
			email, password,
		).Scan(&user.ID, &user.Email, &user.Password, &user.Name, timestamp{&user.CreatedAt})

		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("login user %s: %w", email, biddingerrors.ErrInvalidCredentials)
		}
		if err != nil {
			return storageError("login user", err)
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
