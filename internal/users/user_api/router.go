package user_api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ms-users/internal/database"
	"ms-users/internal/logger"
)

// NewRouter wires the full HTTP surface on top of an opened store.
func NewRouter(store *database.Store, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(log.Middleware)
	r.Use(middleware.Recoverer)

	NewHandler(log).RegisterRoutes(r, store.SessionMiddleware)
	return r
}
