package database

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"ms-users/internal/logger"
)

// QueryLogger echoes every statement through the service logger.
type QueryLogger struct {
	logger *logger.Logger
}

var _ bun.QueryHook = (*QueryLogger)(nil)

func NewQueryLogger(log *logger.Logger) *QueryLogger {
	return &QueryLogger{logger: log}
}

func (h *QueryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryLogger) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime).Round(time.Microsecond)
	if event.Err != nil {
		h.logger.LogDatabase(event.Operation(), "places", fmt.Sprintf("%s (%s) error: %v", event.Query, elapsed, event.Err))
		return
	}
	h.logger.LogDatabase(event.Operation(), "places", fmt.Sprintf("%s (%s)", event.Query, elapsed))
}
