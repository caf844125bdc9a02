package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	v1ws "github.com/lokbasha/lokbasha/internal/api/v1/handlers/websocket"
	v1mware "github.com/lokbasha/lokbasha/internal/api/v1/middleware"
	"github.com/lokbasha/lokbasha/internal/services"
)

func RegisterV1Routes(router *mux.Router, services *services.Services) {
	// v1 routes
	v1 := router.PathPrefix("/v1").Subrouter()

	// Public v1 routes (no auth required)
	v1publicRouter := v1.NewRoute().Subrouter()
	v1publicRouter.HandleFunc("/widget.js", func(w http.ResponseWriter, r *http.Request) {
		HandleWidgetJS(services.GetSessionService(), w, r)
	}).Methods("GET")
	v1publicRouter.HandleFunc("/widget", HandleWidgetPage).Methods("GET")
	v1publicRouter.HandleFunc("/languages", func(w http.ResponseWriter, r *http.Request) {
		HandleLanguages(services.GetLanguages(), w, r)
	}).Methods("GET")

	// Auth v1 routes (no session required)
	v1authRouter := v1.PathPrefix("/auth").Subrouter()
	v1authRouter.Handle("/register", v1mware.RateLimit("auth")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleRegister(services.GetAuthService(), services.GetSessionService(), services.GetLanguages(), w, r)
	}))).Methods("POST")
	v1authRouter.Handle("/login", v1mware.RateLimit("auth")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleLogin(services.GetAuthService(), services.GetSessionService(), w, r)
	}))).Methods("POST")
	v1authRouter.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		HandleLogout(services.GetSessionService(), w, r)
	}).Methods("POST")

	// Protected v1 routes (require a session)
	v1protectedRouter := v1.NewRoute().Subrouter()
	v1protectedRouter.Use(v1mware.RequireSession(services.GetSessionService()))

	// Protected v1 chat routes
	v1chatRouter := v1protectedRouter.PathPrefix("/chat").Subrouter()
	v1chatRouter.Handle("/completions", v1mware.RateLimit("chat_completion")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleChatCompletion(services.GetLocalizeService(), services.GetSessionService(), services.GetAuthService(), w, r)
	}))).Methods("POST")

	// WebSocket chat does its own session check during the handshake.
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		v1ws.HandleChat(services.GetConnectionManager(), services.GetLocalizeService(), services.GetSessionService(), w, r)
	})

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		HandleHealth(services, w, r)
	}).Methods("GET")
}
