package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	v1handlers "github.com/lokbasha/lokbasha/internal/api/v1/handlers"
	"github.com/lokbasha/lokbasha/internal/config"
	"github.com/lokbasha/lokbasha/internal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	level, err := zerolog.ParseLevel(config.GetEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	svc, err := services.InitializeServices()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer svc.Close()

	router := setupRouter(svc)

	addr := config.GetListenAddr()
	log.Info().Str("addr", addr).Msg("Server starting")
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupRouter(svc *services.Services) *mux.Router {
	router := mux.NewRouter()
	v1handlers.RegisterV1Routes(router, svc)
	return router
}
