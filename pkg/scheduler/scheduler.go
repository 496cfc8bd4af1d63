package scheduler

import (
	"context"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
)

// RetryScheduler defines the interface for re-enqueueing postbacks whose
// reconciliation failed internally. The postback endpoint never surfaces
// failures to the partner, so the retry queue is the operator follow-up path.
type RetryScheduler interface {
	// ScheduleReconcileRetry enqueues a postback report for asynchronous
	// re-processing.
	ScheduleReconcileRetry(ctx context.Context, report pipeline.PostbackReport) error
}
