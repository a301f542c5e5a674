//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"postcards/application/commands/bus"
	"postcards/application/ports"
	querybus "postcards/application/queries/bus"
	"postcards/application/services"
	"postcards/infrastructure/config"
	"postcards/pkg/observability"
	"postcards/pkg/session"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	PostcardRepo ports.PostcardRepository
	EventBus     ports.EventBus
	Publisher    ports.EventPublisher
	FlowService  *services.FlowService
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Cache        ports.Cache
	TokenManager *session.TokenManager
	Metrics      *observability.Metrics
	Tracer       *observability.Tracer
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvidePostcardRepository,
	ProvideEventBus,
	ProvideEventPublisher,
	ProvideFlowService,
	ProvideMetrics,
	ProvideTracer,
	ProvideTokenManager,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideInMemoryCache,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
