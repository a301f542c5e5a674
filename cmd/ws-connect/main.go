// Package main implements the gallery WebSocket connection Lambda.
// Connections are anonymous; a valid session token only attaches the
// visitor ID to the connection record.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"postcards/pkg/session"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Global DynamoDB client for Lambda performance optimization
var (
	dynamoClient *dynamodb.Client
	tokens       *session.TokenManager
)

func init() {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	dynamoClient = dynamodb.NewFromConfig(cfg)

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		tokens, err = session.NewTokenManager(session.TokenConfig{SecretKey: secret})
		if err != nil {
			log.Fatalf("Failed to initialize token manager: %v", err)
		}
	}

	log.Println("Gallery connect handler initialized")
}

func connectionsTable() string {
	if table := os.Getenv("CONNECTIONS_TABLE"); table != "" {
		return table
	}
	return "postcards-connections"
}

// visitorFromToken extracts the visitor ID from a session token, if any
func visitorFromToken(token string) string {
	if token == "" || tokens == nil {
		return ""
	}
	claims, err := tokens.Validate(token)
	if err != nil {
		return ""
	}
	return claims.VisitorID
}

// storeConnection saves the connection record with a 24h TTL
func storeConnection(ctx context.Context, connectionID, visitorID, endpoint string) error {
	now := time.Now()

	item := map[string]types.AttributeValue{
		"PK":           &types.AttributeValueMemberS{Value: fmt.Sprintf("CONNECTION#%s", connectionID)},
		"SK":           &types.AttributeValueMemberS{Value: "METADATA"},
		"ConnectionID": &types.AttributeValueMemberS{Value: connectionID},
		"Endpoint":     &types.AttributeValueMemberS{Value: endpoint},
		"ConnectedAt":  &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		"TTL":          &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Add(24*time.Hour).Unix())},
	}
	if visitorID != "" {
		item["VisitorID"] = &types.AttributeValueMemberS{Value: visitorID}
	}

	_, err := dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(connectionsTable()),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store connection: %w", err)
	}
	return nil
}

// removeConnection deletes the connection record on disconnect
func removeConnection(ctx context.Context, connectionID string) error {
	_, err := dynamoClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(connectionsTable()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CONNECTION#%s", connectionID)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	return err
}

// handler processes WebSocket connect and disconnect requests
func handler(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID

	switch request.RequestContext.RouteKey {
	case "$disconnect":
		if err := removeConnection(ctx, connectionID); err != nil {
			log.Printf("Failed to remove connection %s: %v", connectionID, err)
		}
		return events.APIGatewayProxyResponse{StatusCode: 200}, nil

	default: // $connect
		visitorID := visitorFromToken(request.QueryStringParameters["token"])
		endpoint := fmt.Sprintf("%s/%s", request.RequestContext.DomainName, request.RequestContext.Stage)

		if err := storeConnection(ctx, connectionID, visitorID, endpoint); err != nil {
			log.Printf("Failed to store connection %s: %v", connectionID, err)
			return events.APIGatewayProxyResponse{StatusCode: 500}, nil
		}

		log.Printf("Gallery connection %s established", connectionID)
		return events.APIGatewayProxyResponse{StatusCode: 200}, nil
	}
}

func main() {
	lambda.Start(handler)
}
