package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"analyze-relay-api/internal/models"
)

// ErrConfigurationMissing is returned when the provider API key is not configured
var ErrConfigurationMissing = errors.New("missing GEMINI_API_KEY")

// relayService implements the RelayService interface
type relayService struct {
	client UpstreamClient
	apiKey string
}

// NewRelayService creates a new relay service. An empty apiKey is accepted;
// every Analyze call then fails with ErrConfigurationMissing.
func NewRelayService(client UpstreamClient, apiKey string) RelayService {
	return &relayService{
		client: client,
		apiKey: apiKey,
	}
}

// Analyze implements RelayService
func (s *relayService) Analyze(ctx context.Context, body []byte) (*models.AnalyzeResponse, error) {
	if s.apiKey == "" {
		return nil, ErrConfigurationMissing
	}

	req, err := models.ParseInboundRequest(body)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_text_length":  len(req.UserText),
		"has_system_prompt": req.SystemPrompt != "",
	}).Debug("Forwarding analyze request")

	resp, err := s.client.GenerateContent(ctx, s.apiKey, models.NewUpstreamPayload(req))
	if err != nil {
		return nil, err
	}

	return &models.AnalyzeResponse{Text: resp.FirstText()}, nil
}
