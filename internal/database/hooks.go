package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/go-social-api/internal/logging"
)

// QueryLogger is a bun.QueryHook that reports failed and slow queries.
type QueryLogger struct {
	logger        *logging.Logger
	slowThreshold time.Duration
}

var _ bun.QueryHook = (*QueryLogger)(nil)

func NewQueryLogger(logger *logging.Logger, slowThreshold time.Duration) *QueryLogger {
	return &QueryLogger{logger: logger, slowThreshold: slowThreshold}
}

func (h *QueryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryLogger) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	// The request logger carries request_id when the query runs inside a handler
	logger := h.logger
	if reqLogger, ok := logging.LoggerFromContext(ctx); ok {
		logger = reqLogger
	}

	switch {
	case event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) && !IsUniqueViolation(event.Err):
		logger.Error("query failed",
			"operation", event.Operation(),
			"duration_ms", duration.Milliseconds(),
			"query", event.Query,
			"error", event.Err.Error(),
		)
	case h.slowThreshold > 0 && duration >= h.slowThreshold:
		logger.Warn("slow query",
			"operation", event.Operation(),
			"duration_ms", duration.Milliseconds(),
			"query", event.Query,
		)
	}
}
