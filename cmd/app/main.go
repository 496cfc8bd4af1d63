package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/admin"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/clicks"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/postback"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/wallets"
	wshandler "github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/websockets"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/scheduler"
	dydbstore "github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/dynamodb"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/websockets"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tables := tableNamesFromEnv()

	store := dydbstore.New(dbClient, tables)

	// SQS Client and retry scheduler
	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_RETRY_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_RETRY_QUEUE_URL environment variable not set")
	}
	retries := scheduler.NewSQSRetryScheduler(sqsClient, sqsQueueURL)

	postbackBaseURL := os.Getenv("POSTBACK_BASE_URL")
	if postbackBaseURL == "" {
		log.Fatal("POSTBACK_BASE_URL environment variable not set")
	}

	// Wallet-update pushes are optional; without an endpoint they are
	// silently dropped.
	var publisher websockets.Publisher = &websockets.NoOpPublisher{}
	if wsEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT"); wsEndpoint != "" {
		publisher, err = websockets.NewPublisher(store, store, wsEndpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
	}

	cascade := pipeline.NewCascade(store, commissionRateFromEnv(), logger)
	engine := pipeline.NewEngine(store, store, cascade, publisher, logger)
	issuer := pipeline.NewIssuer(store, store, postbackBaseURL, clickTTLFromEnv(), logger)
	reconciler := pipeline.NewReconciler(store, store, store, engine, logger)
	authority := pipeline.NewAuthority(store, store, engine, logger)

	handler := handlers.NewApiHandler(
		clicks.NewClicksHandler(issuer),
		postback.NewPostbackHandler(reconciler, retries, logger),
		admin.NewAdminHandler(authority),
		wallets.NewWalletsHandler(store, store),
	)

	router := handlers.NewRouter(handler, logger)

	// Local websocket endpoint for wallet-update pushes; in AWS the websocket
	// lambda owns the connection lifecycle instead.
	if tables.Connections != "" {
		router.Handle("/ws", wshandler.NewHandler(store))
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func tableNamesFromEnv() dydbstore.TableNames {
	tables := dydbstore.TableNames{
		Clicks:      os.Getenv("DYNAMODB_CLICKS_TABLE_NAME"),
		Earnings:    os.Getenv("DYNAMODB_EARNINGS_TABLE_NAME"),
		EarningKeys: os.Getenv("DYNAMODB_EARNING_KEYS_TABLE_NAME"),
		Users:       os.Getenv("DYNAMODB_USERS_TABLE_NAME"),
		Referrals:   os.Getenv("DYNAMODB_REFERRALS_TABLE_NAME"),
		Offers:      os.Getenv("DYNAMODB_OFFERS_TABLE_NAME"),
		Connections: os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
	}

	if tables.Clicks == "" || tables.Earnings == "" || tables.EarningKeys == "" ||
		tables.Users == "" || tables.Referrals == "" || tables.Offers == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	return tables
}

func commissionRateFromEnv() float64 {
	rate, err := pipeline.CommissionRateFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	return rate
}

func clickTTLFromEnv() time.Duration {
	raw := os.Getenv("CLICK_TTL")
	if raw == "" {
		return pipeline.DefaultClickTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("invalid CLICK_TTL %q: %v", raw, err)
	}
	return ttl
}
