package database

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uptrace/bun"

	"ms-users/internal/utils"
)

type sessionKey struct{}

func WithSession(ctx context.Context, session bun.IDB) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func SessionFromContext(ctx context.Context) (bun.IDB, bool) {
	session, ok := ctx.Value(sessionKey{}).(bun.IDB)
	return session, ok && session != nil
}

// SessionMiddleware gives every request its own connection and closes it once
// the handler returns, including when the handler panics.
func (s *Store) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.DB.Conn(r.Context())
		if err != nil {
			s.Logger.Error("DATABASE", fmt.Sprintf("Failed to acquire session: %v", err))
			utils.WriteJSON(w, http.StatusInternalServerError, utils.NewErrorResponse("Database unavailable"))
			return
		}
		defer func() {
			if err := conn.Close(); err != nil {
				s.Logger.Warn("DATABASE", fmt.Sprintf("Failed to release session: %v", err))
			}
		}()

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), conn)))
	})
}
