package pipeline

import (
	"context"
	"log/slog"
)

// bestEffort runs fn and logs failures instead of propagating them. The
// commission cascade and post-settlement notifications run under this policy:
// their failures must never roll back or block the primary settlement.
func bestEffort(ctx context.Context, logger *slog.Logger, op string, fn func() error) {
	if err := fn(); err != nil {
		logger.ErrorContext(ctx, "best-effort operation failed", "op", op, "error", err)
	}
}
