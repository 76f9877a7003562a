package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"ms-users/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// DB runs the record access functions against one session. Bun is usually
// the per-request connection, but a *bun.DB or bun.Tx works as well.
type DB struct {
	Bun bun.IDB
}

func (d *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns rows in whatever order sqlite hands them back.
func (d *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	err := d.Bun.NewSelect().
		Model(&users).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser inserts one row. A zero ID lets sqlite assign one.
func (d *DB) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	_, err := d.Bun.NewInsert().
		Model(&user).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %d: %w", user.ID, ErrUserExists)
		}
		return nil, err
	}
	return &user, nil
}

func (d *DB) DeleteUser(ctx context.Context, id int64) (string, error) {
	user, err := d.GetUser(ctx, id)
	if err != nil {
		return "", err
	}

	res, err := d.Bun.NewDelete().
		Model((*models.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return "", err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// removed by someone else between the lookup and the delete
		return "", fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}

	return fmt.Sprintf("%d - %s has been deleted", user.ID, user.Name), nil
}

// Both sqlite drivers behind sqliteshim report constraint failures with this text.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY must be unique")
}
