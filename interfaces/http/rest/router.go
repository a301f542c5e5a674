package rest

import (
	"net/http"
	"time"

	"postcards/application/commands/bus"
	querybus "postcards/application/queries/bus"
	"postcards/interfaces/http/rest/handlers"
	"postcards/interfaces/http/rest/middleware"
	"postcards/pkg/observability"
	"postcards/pkg/session"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus     *bus.CommandBus
	queryBus       *querybus.QueryBus
	tokens         *session.TokenManager
	sessionTTL     time.Duration
	secureCookies  bool
	allowedOrigins []string
	metrics        *observability.Metrics
	tracer         *observability.Tracer
	logger         *zap.Logger
}

// NewRouter creates a new router instance. Metrics and tracer are
// optional; nil disables them.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	tokens *session.TokenManager,
	sessionTTL time.Duration,
	secureCookies bool,
	allowedOrigins []string,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus:     commandBus,
		queryBus:       queryBus,
		tokens:         tokens,
		sessionTTL:     sessionTTL,
		secureCookies:  secureCookies,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
		tracer:         tracer,
		logger:         logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.VisitorSession(rt.tokens, rt.logger))
	if rt.tracer != nil {
		router.Use(middleware.Trace(rt.tracer))
	}
	if rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// Writes are rate limited per IP; one visitor flooding the
	// collection would pollute everyone's ending.
	writeLimiter := session.NewIPRateLimiter(10)

	router.Route("/api", func(r chi.Router) {
		// Postcard endpoints
		r.Route("/postcards", func(r chi.Router) {
			postcardHandler := handlers.NewPostcardHandler(rt.commandBus, rt.queryBus, rt.logger)
			r.Get("/", postcardHandler.ListPostcards)
			r.With(middleware.WriteRateLimit(writeLimiter)).Post("/", postcardHandler.CreatePostcard)
			r.Get("/{slugID}", postcardHandler.GetPostcard)
		})

		// Flow endpoints
		flowHandler := handlers.NewFlowHandler(rt.queryBus, rt.logger)
		r.Get("/flow", flowHandler.GetFlow)
		r.Post("/flow/advance", flowHandler.Advance)

		// Choice endpoints
		r.Route("/choices", func(r chi.Router) {
			r.Get("/{choiceSetID}", flowHandler.GetChoices)
			r.Post("/{choiceSetID}/resolve", flowHandler.ResolveChoice)
		})

		// Session endpoint
		sessionHandler := handlers.NewSessionHandler(rt.tokens, rt.sessionTTL, rt.secureCookies, rt.logger)
		r.Post("/session", sessionHandler.CreateSession)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
