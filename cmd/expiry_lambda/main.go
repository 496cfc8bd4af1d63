package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
	dydbstore "github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/dynamodb"
)

var clickStore storage.ClickStore

const sweepBatchSize = 100

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)

	clicksTable := os.Getenv("DYNAMODB_CLICKS_TABLE_NAME")
	if clicksTable == "" {
		log.Fatal("DYNAMODB_CLICKS_TABLE_NAME environment variable not set")
	}

	clickStore = dydbstore.New(dbClient, dydbstore.TableNames{Clicks: clicksTable})
}

// HandleRequest is triggered by an EventBridge Schedule. It sweeps pending
// clicks whose expiry has passed and finalizes them, closing the postback
// window even when no late callback ever arrives.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting expiry sweep for pending clicks...")

	now := time.Now()
	expired, err := clickStore.ListExpiredPendingClicks(ctx, now, sweepBatchSize)
	if err != nil {
		log.Printf("ERROR: failed to list expired clicks: %v", err)
		return err
	}

	if len(expired) == 0 {
		log.Println("No expired pending clicks found.")
		return nil
	}

	log.Printf("Found %d expired pending clicks. Finalizing them...", len(expired))

	for _, click := range expired {
		err := clickStore.TransitionClick(ctx, click.Token, models.ClickPending, models.ClickExpired, "")
		if err != nil {
			// A click that converted between the scan and the transition is
			// fine; anything else is logged and the sweep moves on.
			log.Printf("ERROR: failed to expire click %s: %v", click.Token, err)
			continue
		}
		log.Printf("Expired click %s", click.Token)
	}

	log.Println("Expiry sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
