package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
)

// SQSAPI captures the subset of the SQS client used by the scheduler.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSRetryScheduler implements the RetryScheduler interface using AWS SQS.
type SQSRetryScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSRetryScheduler creates a new SQSRetryScheduler.
func NewSQSRetryScheduler(client SQSAPI, queueURL string) *SQSRetryScheduler {
	return &SQSRetryScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ RetryScheduler = (*SQSRetryScheduler)(nil)

// ScheduleReconcileRetry sends the postback report to the retry queue for
// later re-processing by the retry lambda.
func (s *SQSRetryScheduler) ScheduleReconcileRetry(ctx context.Context, report pipeline.PostbackReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal postback report for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
