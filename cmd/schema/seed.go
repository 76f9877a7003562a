package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"ms-users/internal/logger"
	"ms-users/internal/models"
	"ms-users/internal/users/db"
)

func sampleUsers() []models.User {
	friend := "friend"
	family := "family"
	note := "met at university"

	return []models.User{
		{ID: 1, Name: "Alice", Birth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), Category: &friend, Notes: &note},
		{ID: 2, Name: "Bob", Birth: time.Date(1987, 4, 12, 0, 0, 0, 0, time.UTC), Category: &family},
		{ID: 3, Name: "Carol", Birth: time.Date(1995, 9, 30, 0, 0, 0, 0, time.UTC)},
	}
}

// seedUsers inserts the sample rows, leaving any id that is already taken alone.
func seedUsers(ctx context.Context, idb bun.IDB, log *logger.Logger) (int, error) {
	users := &db.DB{Bun: idb}

	inserted := 0
	for _, u := range sampleUsers() {
		_, err := users.CreateUser(ctx, u)
		if errors.Is(err, db.ErrUserExists) {
			log.Warn("SEED", fmt.Sprintf("User %d already exists, skipping", u.ID))
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("failed to seed user %d: %w", u.ID, err)
		}
		inserted++
	}

	log.Info("SEED", fmt.Sprintf("Inserted %d sample users", inserted))
	return inserted, nil
}
