package config

import (
	"github.com/rs/zerolog/log"
)

// GetTranslateURL returns the base URL of the translation backend.
// The wire format is LibreTranslate-compatible.
func GetTranslateURL() string {
	value := GetEnvOrDefault("TRANSLATE_API_URL", "")
	if value == "" {
		log.Warn().Msg("TRANSLATE_API_URL environment variable not set")
	}
	return value
}

// GetTranslateKey returns the API credential for the translation backend.
// Some deployments run without a key, so empty is allowed.
func GetTranslateKey() string {
	return GetEnvOrDefault("TRANSLATE_API_KEY", "")
}

// GetTranslateMaxTokens returns the per-request token budget for the
// translation backend. Larger inputs get chunked.
func GetTranslateMaxTokens() int {
	return parseEnvInt("TRANSLATE_MAX_TOKENS", 3000)
}
