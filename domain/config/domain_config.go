package config

import "time"

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Postcard constraints
	MaxMessageLength int
	MaxNameLength    int
	MaxSceneLength   int
	DefaultSender    string

	// Flow presentation
	InterstitialDuration time.Duration
	MaxWalkSteps         int

	// Query limits
	MaxPostcardsPerQuery int

	// Validation settings
	AllowEmptyPostmark bool
	AllowFutureDates   bool

	// Feature flags
	EnableLiveGallery bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxMessageLength: 2000,
		MaxNameLength:    80,
		MaxSceneLength:   40,
		DefaultSender:    "A Visitor",

		InterstitialDuration: 2500 * time.Millisecond,
		MaxWalkSteps:         500,

		MaxPostcardsPerQuery: 1000,

		AllowEmptyPostmark: true,
		AllowFutureDates:   false,

		EnableLiveGallery: true,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()
	cfg.MaxMessageLength = 1000
	cfg.MaxPostcardsPerQuery = 500
	return cfg
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()
	cfg.MaxMessageLength = 10000
	cfg.AllowFutureDates = true
	return cfg
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}
