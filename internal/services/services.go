package services

import (
	"fmt"
	"sync"

	"github.com/lokbasha/lokbasha/internal/config"
	"github.com/lokbasha/lokbasha/internal/connections"
	"github.com/lokbasha/lokbasha/internal/infrastructure/genai"
	"github.com/lokbasha/lokbasha/internal/infrastructure/redis"
	"github.com/lokbasha/lokbasha/internal/infrastructure/translate"
	"github.com/lokbasha/lokbasha/internal/languages"
	"github.com/lokbasha/lokbasha/internal/services/auth"
	"github.com/lokbasha/lokbasha/internal/services/localize"
	"github.com/lokbasha/lokbasha/internal/services/session"
	"github.com/lokbasha/lokbasha/internal/store"
	"github.com/rs/zerolog/log"
)

var (
	// Mutex for thread-safe initialization
	servicesMu sync.RWMutex
)

type Services struct {
	authService       *auth.Service
	connectionManager *connections.Manager
	languages         *languages.Registry
	localizeService   *localize.Service
	redisService      *redis.Service
	repository        store.Repository
	sessionService    *session.Service
}

// InitializeServices initializes all required services
func InitializeServices() (*Services, error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	log.Info().Msg("Initializing core services")

	// Initialize Redis service (optional)
	redisService := redis.NewService()

	// Initialize session service with optional Redis
	sessionService := session.NewService(redisService)

	// Initialize the user store (required)
	repository, err := store.NewSQLite(config.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}
	authService := auth.NewService(repository)

	// Initialize generative service (required)
	genaiService := genai.NewService()
	if genaiService == nil {
		return nil, fmt.Errorf("generative service is required for core functionality")
	}

	// Initialize translation service (optional - without it only the
	// direct native path is available)
	translateService := translate.NewService()

	var translator translate.Translator
	if translateService != nil {
		translator = translateService
	}

	registry := languages.NewRegistry()
	localizeService, err := localize.NewService(genaiService, translator, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize localize service: %w", err)
	}

	log.Info().Msg("All services initialized successfully")

	return &Services{
		authService:       authService,
		connectionManager: connections.NewManager(connections.DefaultTimeouts),
		languages:         registry,
		localizeService:   localizeService,
		redisService:      redisService,
		repository:        repository,
		sessionService:    sessionService,
	}, nil
}

// GetAuthService returns the auth service
func (s *Services) GetAuthService() *auth.Service {
	return s.authService
}

// GetLocalizeService returns the localize service
func (s *Services) GetLocalizeService() *localize.Service {
	return s.localizeService
}

// GetSessionService returns the session service
func (s *Services) GetSessionService() *session.Service {
	return s.sessionService
}

// GetLanguages returns the supported language registry
func (s *Services) GetLanguages() *languages.Registry {
	return s.languages
}

// GetConnectionManager returns the WebSocket connection manager
func (s *Services) GetConnectionManager() *connections.Manager {
	return s.connectionManager
}

// GetRepository returns the user store
func (s *Services) GetRepository() store.Repository {
	return s.repository
}

// Close releases infrastructure connections.
func (s *Services) Close() {
	if s.repository != nil {
		if err := s.repository.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close user store")
		}
	}
	if s.redisService != nil {
		if err := s.redisService.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}
}
