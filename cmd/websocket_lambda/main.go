package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	wshandler "github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/websockets"
	dydbstore "github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/dynamodb"
)

var handler *wshandler.Handler

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)

	tables := dydbstore.TableNames{
		Connections: os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
	}
	if tables.Connections == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME environment variable not set")
	}

	handler = wshandler.NewHandler(dydbstore.New(dbClient, tables))
}

func main() {
	lambda.Start(handler.HandleRoute)
}
