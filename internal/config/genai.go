package config

import (
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// GetGenAIKey returns the API credential for the generative backend.
func GetGenAIKey() string {
	value := GetEnvOrDefault("GENAI_API_KEY", "")
	if value == "" {
		log.Warn().Msg("GENAI_API_KEY environment variable not set")
	}
	return value
}

// GetGenAIBaseURL returns an override base URL for OpenAI-compatible
// backends. Empty means the default OpenAI endpoint.
func GetGenAIBaseURL() string {
	return GetEnvOrDefault("GENAI_BASE_URL", "")
}

// GetGenAIModel returns the model identifier used for completions.
func GetGenAIModel() string {
	return GetEnvOrDefault("GENAI_MODEL", openai.GPT4oMini)
}
