package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
	dydbstore "github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/dynamodb"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/websockets"
)

var reconciler *pipeline.Reconciler

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)

	tables := dydbstore.TableNames{
		Clicks:      os.Getenv("DYNAMODB_CLICKS_TABLE_NAME"),
		Earnings:    os.Getenv("DYNAMODB_EARNINGS_TABLE_NAME"),
		EarningKeys: os.Getenv("DYNAMODB_EARNING_KEYS_TABLE_NAME"),
		Users:       os.Getenv("DYNAMODB_USERS_TABLE_NAME"),
		Referrals:   os.Getenv("DYNAMODB_REFERRALS_TABLE_NAME"),
		Offers:      os.Getenv("DYNAMODB_OFFERS_TABLE_NAME"),
	}
	if tables.Clicks == "" || tables.Earnings == "" || tables.EarningKeys == "" ||
		tables.Users == "" || tables.Referrals == "" || tables.Offers == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store := dydbstore.New(dbClient, tables)

	rate, err := pipeline.CommissionRateFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	// The retry lambda has no websocket endpoint; wallet pushes for retried
	// settlements are dropped.
	cascade := pipeline.NewCascade(store, rate, logger)
	engine := pipeline.NewEngine(store, store, cascade, &websockets.NoOpPublisher{}, logger)
	reconciler = pipeline.NewReconciler(store, store, store, engine, logger)
}

// HandleRequest re-runs reconciliation for postbacks that failed on the
// synchronous path.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var report pipeline.PostbackReport
		if err := json.Unmarshal([]byte(message.Body), &report); err != nil {
			log.Printf("ERROR: failed to unmarshal postback report from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		log.Printf("Retrying reconciliation for click %s", report.ClickToken)

		result, err := reconciler.Reconcile(ctx, report)
		if err != nil {
			if errors.Is(err, pipeline.ErrExpiredClick) || errors.Is(err, pipeline.ErrAlreadyFinalized) {
				// The click resolved some other way while the message waited
				// in the queue; nothing left to retry.
				log.Printf("Click %s resolved before retry: %v", report.ClickToken, err)
				continue
			}
			log.Printf("ERROR: failed to reconcile click %s: %v", report.ClickToken, err)
			// In a production system, persistent failures would be sent to a DLQ.
			return err
		}

		log.Printf("Successfully reconciled click %s: earning %s is %s", report.ClickToken, result.EarningId, result.EarningStatus)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
