package di

import (
	"context"
	"fmt"

	"postcards/application/commands"
	"postcards/application/commands/bus"
	"postcards/application/ports"
	"postcards/application/queries"
	querybus "postcards/application/queries/bus"
	queries_handlers "postcards/application/queries/handlers"
	"postcards/application/services"
	"postcards/domain/events"
	"postcards/infrastructure/config"
	"postcards/infrastructure/messaging/eventbridge"
	"postcards/infrastructure/persistence/dynamodb"
	"postcards/pkg/observability"
	"postcards/pkg/session"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvidePostcardRepository creates the postcard repository
func ProvidePostcardRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.PostcardRepository {
	return dynamodb.NewPostcardRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName,
		logger,
	)
}

// ProvideEventBus creates an event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewEventBridgePublisher(
		client,
		cfg.EventBusName,
		logger,
	)
}

// ProvideEventPublisher creates an event publisher (adapter for EventBus)
func ProvideEventPublisher(eventBus ports.EventBus) ports.EventPublisher {
	return &eventPublisherAdapter{eventBus: eventBus}
}

// eventPublisherAdapter adapts EventBus to EventPublisher interface
type eventPublisherAdapter struct {
	eventBus ports.EventBus
}

func (a *eventPublisherAdapter) Publish(ctx context.Context, event events.DomainEvent) error {
	return a.eventBus.Publish(ctx, event)
}

func (a *eventPublisherAdapter) PublishBatch(ctx context.Context, events []events.DomainEvent) error {
	return a.eventBus.PublishBatch(ctx, events)
}

// ProvideFlowService creates the flow service
func ProvideFlowService(postcardRepo ports.PostcardRepository, logger *zap.Logger) *services.FlowService {
	return services.NewFlowService(postcardRepo, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("Postcards/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates a tracer instance
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("postcards")
}

// ProvideTokenManager creates the visitor session token manager
func ProvideTokenManager(cfg *config.Config) (*session.TokenManager, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		// Sessions are anonymous; a fixed dev secret just keeps local
		// cookies valid across restarts.
		secret = "postcards-dev-secret"
	}
	return session.NewTokenManager(session.TokenConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
		TTL:       cfg.SessionTTL,
	})
}

// busLogger adapts zap's sugared logger to the bus middleware logger
type busLogger struct {
	s *zap.SugaredLogger
}

func (l busLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l busLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	postcardRepo ports.PostcardRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	pipeline := bus.NewPipeline(
		bus.LoggingMiddleware(busLogger{s: logger.Sugar()}),
		bus.ValidationMiddleware(),
	)

	createHandler := commands.NewCreatePostcardHandler(postcardRepo, eventBus, logger)
	commandBus.Register(commands.CreatePostcardCommand{}, pipeline.Execute(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreatePostcardCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createHandler.Handle(ctx, createCmd)
			return err
		},
	}))

	return commandBus
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	postcardRepo ports.PostcardRepository,
	flowService *services.FlowService,
	cache ports.Cache,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	// Register ListPostcardsQuery handler
	listHandler := queries_handlers.NewListPostcardsHandler(postcardRepo, logger)
	queryBus.Register(queries.ListPostcardsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListPostcardsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listHandler.Handle(ctx, listQuery)
		},
	})

	// Register GetPostcardQuery handler. Postcards are immutable once
	// sent, so cached single-card reads never go stale.
	getCaching := querybus.NewCachingMiddleware(cache, 300)
	getHandler := queries_handlers.NewGetPostcardHandler(postcardRepo, logger)
	queryBus.Register(queries.GetPostcardQuery{}, getCaching.Wrap(&QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetPostcardQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getHandler.Handle(ctx, getQuery)
		},
	}))

	// Register GetFlowQuery handler
	getFlowHandler := queries_handlers.NewGetFlowHandler(flowService, logger)
	queryBus.Register(queries.GetFlowQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			flowQuery, ok := query.(queries.GetFlowQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getFlowHandler.Handle(ctx, flowQuery)
		},
	})

	// Register AdvanceFlowQuery handler
	advanceHandler := queries_handlers.NewAdvanceFlowHandler(flowService, logger)
	queryBus.Register(queries.AdvanceFlowQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			advanceQuery, ok := query.(queries.AdvanceFlowQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return advanceHandler.Handle(ctx, advanceQuery)
		},
	})

	return queryBus
}

// ProvideInMemoryCache creates a simple in-memory cache
// In production, this would be Redis or similar
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}
