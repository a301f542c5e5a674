package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"postcards/application/ports"
	"postcards/domain/core/entities"
	"postcards/domain/core/valueobjects"
	pkgerrors "postcards/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// PostcardRepository implements ports.PostcardRepository using DynamoDB.
//
// Single-table layout:
//
//	PK = POSTCARD#<slug>    SK = METADATA#v0
//	GSI1PK = SOURCE#<source>  GSI1SK = CREATED#<RFC3339>
//
// The GSI keeps each source partition sorted by creation time, which is
// exactly the order the flow builder splices visitor cards in.
type PostcardRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewPostcardRepository creates a new PostcardRepository
func NewPostcardRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.PostcardRepository {
	return &PostcardRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// postcardItem represents the DynamoDB item structure for a postcard
type postcardItem struct {
	PK              string `dynamodbav:"PK"`
	SK              string `dynamodbav:"SK"`
	GSI1PK          string `dynamodbav:"GSI1PK"`
	GSI1SK          string `dynamodbav:"GSI1SK"`
	EntityType      string `dynamodbav:"EntityType"`
	SlugID          string `dynamodbav:"SlugID"`
	Message         string `dynamodbav:"Message"`
	To              string `dynamodbav:"To,omitempty"`
	From            string `dynamodbav:"From,omitempty"`
	Source          string `dynamodbav:"Source"`
	Scene           string `dynamodbav:"Scene,omitempty"`
	Postmarked      string `dynamodbav:"Postmarked,omitempty"`
	Illustration    string `dynamodbav:"Illustration,omitempty"`
	TransitionLabel string `dynamodbav:"TransitionLabel,omitempty"`
	ChoiceLabel     string `dynamodbav:"ChoiceLabel,omitempty"`
	CreatedAt       string `dynamodbav:"CreatedAt"`
	Version         int    `dynamodbav:"Version"`
}

func postcardPK(slug string) string {
	return fmt.Sprintf("POSTCARD#%s", slug)
}

const postcardSK = "METADATA#v0"

// Save persists a postcard. The conditional put makes the slug the
// uniqueness boundary: a second write to the same slug fails instead of
// silently replacing someone's card.
func (r *PostcardRepository) Save(ctx context.Context, postcard *entities.Postcard) error {
	item := postcardItem{
		PK:              postcardPK(postcard.SlugID().String()),
		SK:              postcardSK,
		GSI1PK:          fmt.Sprintf("SOURCE#%s", postcard.Source()),
		GSI1SK:          fmt.Sprintf("CREATED#%s", postcard.CreatedAt().UTC().Format(time.RFC3339Nano)),
		EntityType:      "POSTCARD",
		SlugID:          postcard.SlugID().String(),
		Message:         postcard.Message().Body(),
		To:              postcard.Message().To(),
		From:            postcard.Message().From(),
		Source:          string(postcard.Source()),
		Scene:           postcard.Scene(),
		Postmarked:      postcard.Postmarked(),
		Illustration:    postcard.Illustration(),
		TransitionLabel: postcard.TransitionLabel(),
		ChoiceLabel:     postcard.ChoiceLabel(),
		CreatedAt:       postcard.CreatedAt().UTC().Format(time.RFC3339Nano),
		Version:         postcard.Version(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal postcard: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionalCheckFailed) {
			return pkgerrors.ErrSlugTaken.WithDetail("slug", postcard.SlugID().String())
		}
		r.logger.Error("Failed to save postcard",
			zap.String("slugId", postcard.SlugID().String()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("put postcard", err)
	}

	return nil
}

// GetBySlug retrieves a postcard by its slug
func (r *PostcardRepository) GetBySlug(ctx context.Context, slugID valueobjects.SlugID) (*entities.Postcard, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: postcardPK(slugID.String())},
			"SK": &types.AttributeValueMemberS{Value: postcardSK},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get postcard", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.ErrPostcardNotFound.WithDetail("slug", slugID.String())
	}

	var item postcardItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal postcard: %w", err)
	}

	return itemToEntity(item)
}

// List returns postcards matching the filter, oldest first.
func (r *PostcardRepository) List(ctx context.Context, filter ports.ListFilter) ([]*entities.Postcard, error) {
	sources := []entities.PostcardSource{entities.SourceSeed, entities.SourceUser}
	if filter.Source != "" {
		sources = []entities.PostcardSource{filter.Source}
	}

	var postcards []*entities.Postcard
	for _, source := range sources {
		items, err := r.querySource(ctx, source, filter)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			postcard, err := itemToEntity(item)
			if err != nil {
				r.logger.Warn("Skipping unreadable postcard item",
					zap.String("slugId", item.SlugID),
					zap.Error(err),
				)
				continue
			}
			postcards = append(postcards, postcard)
		}
	}

	// Each source partition comes back ordered; merging two partitions
	// needs one more sort to interleave them by creation time.
	sort.SliceStable(postcards, func(i, j int) bool {
		return postcards[i].CreatedAt().Before(postcards[j].CreatedAt())
	})

	if filter.Limit > 0 && len(postcards) > filter.Limit {
		postcards = postcards[:filter.Limit]
	}

	return postcards, nil
}

// querySource queries one GSI1 source partition in sort-key order
func (r *PostcardRepository) querySource(ctx context.Context, source entities.PostcardSource, filter ports.ListFilter) ([]postcardItem, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("SOURCE#%s", source)))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if filter.Scene != "" {
		builder = builder.WithFilter(expression.Name("Scene").Equal(expression.Value(filter.Scene)))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(true),
	}

	var items []postcardItem
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query postcards", err)
		}

		var pageItems []postcardItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal postcard page: %w", err)
		}
		items = append(items, pageItems...)
	}

	return items, nil
}

// itemToEntity reconstructs a domain postcard from a DynamoDB item
func itemToEntity(item postcardItem) (*entities.Postcard, error) {
	slugID, err := valueobjects.NewSlugIDFromString(item.SlugID)
	if err != nil {
		return nil, err
	}

	message, err := valueobjects.NewMessage(item.Message, item.To, item.From)
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		createdAt, err = time.Parse(time.RFC3339, item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("unparseable CreatedAt %q: %w", item.CreatedAt, err)
		}
	}

	return entities.ReconstructPostcard(
		slugID,
		message,
		entities.PostcardSource(item.Source),
		item.Scene,
		item.Postmarked,
		item.Illustration,
		item.TransitionLabel,
		item.ChoiceLabel,
		createdAt,
	)
}
