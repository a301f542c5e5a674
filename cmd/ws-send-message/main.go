// Package main implements the gallery fan-out Lambda. It is triggered
// by postcard.created events on the bus and pushes the new card to
// every connected gallery client. The gallery is shared, so every
// connection receives every card.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwTypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Global DynamoDB client for Lambda performance optimization
var dynamoClient *dynamodb.Client

// GalleryMessage is the payload pushed to connected clients
type GalleryMessage struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func init() {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	dynamoClient = dynamodb.NewFromConfig(cfg)

	log.Println("Gallery fan-out handler initialized")
}

func connectionsTable() string {
	if table := os.Getenv("CONNECTIONS_TABLE"); table != "" {
		return table
	}
	return "postcards-connections"
}

// newManagementClient creates an API Gateway Management API client for
// the given connection endpoint
func newManagementClient(ctx context.Context, endpoint string) (*apigatewaymanagementapi.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s", endpoint))
	}), nil
}

// allConnections returns connectionID -> endpoint for every open connection
func allConnections(ctx context.Context) (map[string]string, error) {
	connections := make(map[string]string)

	paginator := dynamodb.NewScanPaginator(dynamoClient, &dynamodb.ScanInput{
		TableName: aws.String(connectionsTable()),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connections: %w", err)
		}

		for _, item := range page.Items {
			connID, _ := item["ConnectionID"].(*types.AttributeValueMemberS)
			endpoint, _ := item["Endpoint"].(*types.AttributeValueMemberS)
			if connID != nil && endpoint != nil {
				connections[connID.Value] = endpoint.Value
			}
		}
	}

	return connections, nil
}

// removeStaleConnection drops a connection record whose client is gone
func removeStaleConnection(ctx context.Context, connectionID string) {
	_, err := dynamoClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(connectionsTable()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CONNECTION#%s", connectionID)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		log.Printf("Failed to remove stale connection %s: %v", connectionID, err)
	}
}

// send pushes a message to one connection, cleaning up if it is gone
func send(ctx context.Context, client *apigatewaymanagementapi.Client, connectionID string, message []byte) error {
	_, err := client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(connectionID),
		Data:         message,
	})
	if err != nil {
		var gone *apigwTypes.GoneException
		if errors.As(err, &gone) {
			removeStaleConnection(ctx, connectionID)
			return nil
		}
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// handler receives a postcard event from the bus and fans it out
func handler(ctx context.Context, event events.CloudWatchEvent) error {
	log.Printf("Fanning out %s event", event.DetailType)

	message, err := json.Marshal(GalleryMessage{
		Type:      event.DetailType,
		Timestamp: time.Now().UnixMilli(),
		Data:      event.Detail,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal gallery message: %w", err)
	}

	connections, err := allConnections(ctx)
	if err != nil {
		return err
	}
	if len(connections) == 0 {
		return nil
	}

	// Connections behind the same stage share an endpoint; cache the
	// management client per endpoint.
	clients := make(map[string]*apigatewaymanagementapi.Client)
	var sent, failed int
	for connectionID, endpoint := range connections {
		client, ok := clients[endpoint]
		if !ok {
			client, err = newManagementClient(ctx, endpoint)
			if err != nil {
				return err
			}
			clients[endpoint] = client
		}

		if err := send(ctx, client, connectionID, message); err != nil {
			log.Printf("Failed to push to connection %s: %v", connectionID, err)
			failed++
			continue
		}
		sent++
	}

	log.Printf("Gallery fan-out complete: %d sent, %d failed", sent, failed)
	return nil
}

func main() {
	lambda.Start(handler)
}
