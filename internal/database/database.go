package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"ms-users/internal/config"
	"ms-users/internal/logger"
	"ms-users/internal/models"
)

// Store is the process-wide handle on the sqlite file. It is built once in
// main and handed to whatever needs sessions.
type Store struct {
	DB     *bun.DB
	Logger *logger.Logger
}

func Open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.Path, err)
	}
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database %s: %w", cfg.Path, err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	if cfg.Echo {
		bunDB.AddQueryHook(NewQueryLogger(log))
	}

	log.Info("DATABASE", fmt.Sprintf("SQLite connection successful (%s)", cfg.Path))
	return &Store{DB: bunDB, Logger: log}, nil
}

// EnsureSchema creates the places table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.NewCreateTable().
		Model((*models.User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create places table: %w", err)
	}
	return nil
}

// ResetSchema drops and recreates the places table. All rows are lost.
func (s *Store) ResetSchema(ctx context.Context) error {
	_, err := s.DB.NewDropTable().
		Model((*models.User)(nil)).
		IfExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to drop places table: %w", err)
	}
	return s.EnsureSchema(ctx)
}

func (s *Store) Close() error {
	return s.DB.Close()
}
