package lambda

import (
	"context"
	"errors"
	"sync"
	"time"

	"analyze-relay-api/internal/config"
	"analyze-relay-api/pkg/server"
)

// ContainerManager keeps the service container alive across warm invocations
type ContainerManager struct {
	container   *server.Container
	lastUsed    time.Time
	mu          sync.RWMutex
	initialized bool
	initErr     error
	initOnce    sync.Once
	loadConfig  func() (*config.Config, error)
	opts        []server.Option
}

var errContainerClosed = errors.New("container has been cleaned up")

var (
	globalContainerManager *ContainerManager
	containerManagerOnce   sync.Once
)

// GetContainerManager returns the global container manager instance
func GetContainerManager() *ContainerManager {
	containerManagerOnce.Do(func() {
		globalContainerManager = NewContainerManager(config.GetOptimizedConfig)
	})
	return globalContainerManager
}

// NewContainerManager creates a manager that builds its container from loadConfig on first use
func NewContainerManager(loadConfig func() (*config.Config, error), opts ...server.Option) *ContainerManager {
	return &ContainerManager{
		loadConfig: loadConfig,
		opts:       opts,
	}
}

// GetContainer returns the service container, initializing it on the first call.
// A failed initialization is remembered and returned on every later call.
func (cm *ContainerManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.initOnce.Do(func() {
		cfg, err := cm.loadConfig()
		if err != nil {
			cm.initErr = err
			return
		}
		config.ConfigureLogging(cfg.Log)

		container, err := server.NewContainer(cfg, cm.opts...)
		if err != nil {
			cm.initErr = err
			return
		}

		cm.mu.Lock()
		cm.container = container
		cm.initialized = true
		cm.mu.Unlock()
	})

	if cm.initErr != nil {
		return nil, cm.initErr
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.container == nil {
		return nil, errContainerClosed
	}
	cm.lastUsed = time.Now()
	return cm.container, nil
}

// IsHealthy checks if the manager holds a container used within the last five minutes
func (cm *ContainerManager) IsHealthy() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if !cm.initialized || cm.container == nil {
		return false
	}

	return time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup releases the container
func (cm *ContainerManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}

	cm.initialized = false
	return nil
}
