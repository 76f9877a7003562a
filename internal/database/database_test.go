package database_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"ms-users/internal/config"
	"ms-users/internal/database"
	"ms-users/internal/logger"
	"ms-users/internal/models"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string, out io.Writer, echo bool) *database.Store {
	t.Helper()
	log := logger.New(out, logger.DEBUG)
	store, err := database.Open(context.Background(), config.DatabaseConfig{
		Path:         path,
		MaxOpenConns: 1,
		Echo:         echo,
	}, log)
	require.NoError(t, err)
	return store
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "places.db")

	store := openStore(t, path, io.Discard, false)
	require.NoError(t, store.EnsureSchema(ctx))

	_, err := store.DB.NewInsert().Model(&models.User{ID: 1, Name: "Alice"}).Exec(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// reopening must keep existing rows
	store = openStore(t, path, io.Discard, false)
	defer store.Close()
	require.NoError(t, store.EnsureSchema(ctx))

	count, err := store.DB.NewSelect().Model((*models.User)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestResetSchemaDropsRows(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "places.db"), io.Discard, false)
	defer store.Close()
	require.NoError(t, store.EnsureSchema(ctx))

	_, err := store.DB.NewInsert().Model(&models.User{ID: 1, Name: "Alice"}).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, store.ResetSchema(ctx))
	count, err := store.DB.NewSelect().Model((*models.User)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestQueryEcho(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	store := openStore(t, filepath.Join(t.TempDir(), "places.db"), &buf, true)
	defer store.Close()

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.Contains(t, buf.String(), "CREATE TABLE IF NOT EXISTS")
	assert.Contains(t, buf.String(), "[DATABASE  ]")
}

func TestSessionMiddlewareBindsAndReleases(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "places.db"), io.Discard, false)
	defer store.Close()

	var sawSession bool
	h := store.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := database.SessionFromContext(r.Context())
		sawSession = ok && session != nil
		assert.Equal(t, 1, store.DB.Stats().InUse)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, sawSession)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, store.DB.Stats().InUse)
}

func TestSessionMiddlewareReleasesOnPanic(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "places.db"), io.Discard, false)
	defer store.Close()

	h := middleware.Recoverer(store.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler blew up")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 0, store.DB.Stats().InUse)
}

func TestSessionFromEmptyContext(t *testing.T) {
	_, ok := database.SessionFromContext(context.Background())
	assert.False(t, ok)
}
