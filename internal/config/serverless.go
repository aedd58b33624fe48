package config

import (
	"context"
	"os"
	"sync"
)

// Platform names reported by GetDeploymentMode
const (
	PlatformLambda = "lambda"
	PlatformVercel = "vercel"
	PlatformServer = "server"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	Platform     string
	FunctionName string
	Region       string
	Stage        string
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = detectServerless()
	})
	return serverlessConfig
}

func detectServerless() *ServerlessConfig {
	sc := &ServerlessConfig{
		Platform: PlatformServer,
		Stage:    GetEnv("STAGE", "dev"),
	}

	switch {
	case os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "":
		sc.Platform = PlatformLambda
		sc.FunctionName = os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
		sc.Region = os.Getenv("AWS_REGION")
	case GetEnvAsBool("VERCEL", false):
		sc.Platform = PlatformVercel
		sc.Region = os.Getenv("VERCEL_REGION")
		sc.Stage = GetEnv("VERCEL_ENV", sc.Stage)
	}

	return sc
}

// IsServerlessMode returns true if running as a serverless function
func IsServerlessMode() bool {
	return GetServerlessConfig().Platform != PlatformServer
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment
func AdaptConfigForServerless(ctx context.Context, config *Config) *Config {
	if !IsServerlessMode() {
		return config
	}

	// Function logs go to a collector, keep them machine readable
	config.Log.Format = "json"

	if stage := GetServerlessConfig().Stage; stage == "prod" || stage == "production" {
		config.Environment = "production"
	}

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	config = AdaptConfigForServerless(context.Background(), config)

	return config, nil
}
