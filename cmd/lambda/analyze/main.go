package main

import (
	"context"
	"net/http"

	"analyze-relay-api/internal/handlers"
	"analyze-relay-api/internal/middleware"
	"analyze-relay-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var manager = lambda.GetContainerManager()

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// Convert API Gateway event to generic request
	req, err := lambda.FromAPIGateway(event)
	if err != nil {
		logrus.WithError(err).Error("Failed to decode request")
		return lambda.ToAPIGateway(handlers.ErrorResponse(err)), nil
	}

	container, err := manager.GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		if req.Method == http.MethodOptions {
			return lambda.ToAPIGateway(&lambda.Response{StatusCode: http.StatusOK, Headers: middleware.CORSHeaders()}), nil
		}
		return lambda.ToAPIGateway(handlers.ErrorResponse(err)), nil
	}

	analyzeHandler := handlers.NewAnalyzeHandler(container.RelayService)

	resp, err := analyzeHandler.HandleAnalyze(ctx, req)
	if err != nil {
		return lambda.ToAPIGateway(handlers.ErrorResponse(err)), nil
	}

	return lambda.ToAPIGateway(resp), nil
}

func main() {
	awslambda.Start(handler)
}
