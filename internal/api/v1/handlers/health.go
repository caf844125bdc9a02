package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lokbasha/lokbasha/internal/services"
)

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// HandleHealth reports process liveness plus the state of the user
// store. Redis is optional so its absence never degrades the status.
func HandleHealth(svc *services.Services, w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Store: "ok"}

	if repo := svc.GetRepository(); repo != nil {
		if err := repo.Ping(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Store = "unreachable"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(resp)
}
