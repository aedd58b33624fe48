package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"analyze-relay-api/internal/middleware"
	"analyze-relay-api/internal/models"
	"analyze-relay-api/internal/services"
	"analyze-relay-api/pkg/lambda"
)

// AnalyzeHandler handles analyze requests for both gin and Lambda
type AnalyzeHandler struct {
	relayService services.RelayService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(relayService services.RelayService) *AnalyzeHandler {
	return &AnalyzeHandler{
		relayService: relayService,
	}
}

// process runs one request through the relay and returns status and JSON body.
// OPTIONS yields an empty body.
func (h *AnalyzeHandler) process(ctx context.Context, method string, body []byte) (int, []byte) {
	if method == http.MethodOptions {
		return http.StatusOK, nil
	}

	var (
		status  int
		payload interface{}
	)

	if method != http.MethodPost {
		status, payload = errorEnvelope(ErrMethodNotAllowed)
	} else if resp, err := h.relayService.Analyze(ctx, body); err != nil {
		status, payload = errorEnvelope(err)
	} else {
		status, payload = http.StatusOK, resp
	}

	out, err := json.Marshal(payload)
	if err != nil {
		status, payload = errorEnvelope(err)
		out, _ = json.Marshal(payload)
	}

	return status, out
}

func errorEnvelope(err error) (int, models.ErrorResponse) {
	return StatusForError(err), models.ErrorResponse{Error: ErrorMessage(err)}
}

// @Summary Analyze text
// @Description Forward userText and an optional systemPrompt to the generative model and return its text
// @Tags analyze
// @Accept json
// @Produce json
// @Param request body models.InboundRequest true "Text to analyze"
// @Success 200 {object} models.AnalyzeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 405 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	for k, v := range middleware.CORSHeaders() {
		c.Header(k, v)
	}

	body, err := c.GetRawData()
	if err != nil {
		_ = c.Error(err)
		status, payload := errorEnvelope(err)
		c.JSON(status, payload)
		return
	}

	status, out := h.process(c.Request.Context(), c.Request.Method, body)
	if len(out) == 0 {
		c.Status(status)
		return
	}

	c.Data(status, "application/json", out)
}

// HandleAnalyze is the Lambda entry for analyze requests
func (h *AnalyzeHandler) HandleAnalyze(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	status, out := h.process(ctx, req.Method, req.Body)

	fields := logrus.Fields{
		"request_id":  req.RequestID,
		"method":      req.Method,
		"path":        req.Path,
		"status_code": status,
	}
	switch {
	case status >= 500:
		logrus.WithFields(fields).Error("Server error")
	case status >= 400:
		logrus.WithFields(fields).Warn("Client error")
	default:
		logrus.WithFields(fields).Info("Request completed")
	}

	return &lambda.Response{
		StatusCode: status,
		Headers:    middleware.CORSHeaders(),
		Body:       out,
	}, nil
}

// ErrorResponse builds a Lambda error envelope for failures outside the relay,
// such as a container that could not be initialized
func ErrorResponse(err error) *lambda.Response {
	status, payload := errorEnvelope(err)
	out, _ := json.Marshal(payload)
	return &lambda.Response{
		StatusCode: status,
		Headers:    middleware.CORSHeaders(),
		Body:       out,
	}
}
