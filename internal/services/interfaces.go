package services

import (
	"context"

	"analyze-relay-api/internal/models"
)

// RelayService forwards analyze requests to the upstream provider
type RelayService interface {
	// Analyze checks configuration, parses the raw request body and issues
	// exactly one upstream call.
	Analyze(ctx context.Context, body []byte) (*models.AnalyzeResponse, error)
}

// UpstreamClient is the provider call used by the relay
type UpstreamClient interface {
	GenerateContent(ctx context.Context, apiKey string, payload *models.UpstreamPayload) (*models.UpstreamResponse, error)
}
