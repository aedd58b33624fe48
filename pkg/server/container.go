package server

import (
	"fmt"
	"net/http"

	"analyze-relay-api/internal/config"
	"analyze-relay-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	RelayService services.RelayService

	// Internal dependencies
	services *services.ServiceContainer
}

// Option customizes container construction
type Option func(*services.ServiceConfig)

// WithHTTPClient sets the client used for upstream calls
func WithHTTPClient(client *http.Client) Option {
	return func(sc *services.ServiceConfig) {
		sc.HTTPClient = client
	}
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	serviceConfig := &services.ServiceConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	}
	for _, opt := range opts {
		opt(serviceConfig)
	}

	serviceContainer, err := services.NewServiceContainer(serviceConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	if err := serviceContainer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service container: %w", err)
	}

	return &Container{
		Config:       cfg,
		RelayService: serviceContainer.RelayService,
		services:     serviceContainer,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.services != nil {
		if err := c.services.Close(); err != nil {
			return fmt.Errorf("failed to close services: %w", err)
		}
	}

	return nil
}
