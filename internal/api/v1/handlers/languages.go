package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lokbasha/lokbasha/internal/languages"
	"github.com/lokbasha/lokbasha/pkg/httpext"
	"github.com/rs/zerolog/log"
)

type languageEntry struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	Welcome    string `json:"welcome"`
}

// HandleLanguages lists the languages the assistant can answer in, with
// the native greeting the widget shows on load.
func HandleLanguages(registry *languages.Registry, w http.ResponseWriter, r *http.Request) {
	all := registry.All()
	entries := make([]languageEntry, len(all))
	for i, lang := range all {
		entries[i] = languageEntry{
			Code:       lang.Code,
			Name:       lang.Name,
			NativeName: lang.NativeName,
			Welcome:    lang.Welcome,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"languages": entries}); err != nil {
		log.Error().Err(err).Msg("Failed to encode languages response")
		httpext.JsonError(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
