package services

import (
	"fmt"
	"net/http"

	"analyze-relay-api/internal/adapters/gemini"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	RelayService RelayService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(config *ServiceConfig) (*ServiceContainer, error) {
	if config == nil {
		return nil, fmt.Errorf("service config cannot be nil")
	}

	client := gemini.NewClient(gemini.ClientConfig{
		BaseURL:    config.BaseURL,
		Model:      config.Model,
		HTTPClient: config.HTTPClient,
	})

	return &ServiceContainer{
		RelayService: NewRelayService(client, config.APIKey),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.RelayService == nil {
		return fmt.Errorf("relay service is nil")
	}
	return nil
}

// Close performs cleanup for all services
func (sc *ServiceContainer) Close() error {
	return nil
}
