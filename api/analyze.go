// Package handler is the Vercel function entry point for the analyze relay.
package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"analyze-relay-api/internal/config"
	"analyze-relay-api/internal/handlers"
	"analyze-relay-api/pkg/server"
)

var (
	router    http.Handler
	setupOnce sync.Once
)

// setup runs once per cold start
func setup() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		router = failingHandler(err)
		return
	}
	config.ConfigureLogging(cfg.Log)

	container, err := server.NewContainer(cfg)
	if err != nil {
		router = failingHandler(err)
		return
	}

	router = handlers.NewRouter(&handlers.RouterConfig{
		RelayService: container.RelayService,
	})
}

// failingHandler answers every request with the initialization error
func failingHandler(err error) http.Handler {
	logrus.WithError(err).Error("Failed to initialize analyze function")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := handlers.ErrorResponse(err)
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(resp.StatusCode)
		w.Write(resp.Body)
	})
}

// Handler is the entry point for Vercel serverless functions
func Handler(w http.ResponseWriter, r *http.Request) {
	setupOnce.Do(setup)
	router.ServeHTTP(w, r)
}
