// Package genai is the client for the external generative-text backend,
// consumed through the OpenAI chat completions API.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"

	"github.com/lokbasha/lokbasha/internal/config"
	"github.com/lokbasha/lokbasha/internal/languages"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

var (
	// ErrQuota marks completions rejected for quota or rate reasons.
	ErrQuota = errors.New("generative backend quota exceeded")
	// ErrNetwork marks completions that never reached the backend.
	ErrNetwork = errors.New("generative backend unreachable")
	// ErrEmptyReply marks completions that returned no usable text.
	ErrEmptyReply = errors.New("generative backend returned an empty reply")
)

// Message is one turn of conversation context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single completion.
type Request struct {
	SystemPrompt string
	History      []Message
	Prompt       string
	Config       languages.GenerationConfig
}

type Service struct {
	mu     sync.RWMutex
	client *openai.Client
	model  string
}

// NewService builds the generative client from environment config.
// Returns nil when no credential is configured.
func NewService() *Service {
	log.Info().Msg("Initialising generative service")

	key := config.GetGenAIKey()
	if key == "" {
		log.Warn().Msg("Generative service not configured - GENAI_API_KEY missing")
		return nil
	}

	clientConfig := openai.DefaultConfig(key)
	if baseURL := config.GetGenAIBaseURL(); baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &Service{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.GetGenAIModel(),
	}
}

// Generate runs one chat completion and returns the assistant text.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.SystemPrompt,
	})
	for _, msg := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: req.Config.Temperature,
		TopP:        req.Config.TopP,
		MaxTokens:   req.Config.MaxTokens,
		Stop:        req.Config.Stop,
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyReply
	}

	return resp.Choices[0].Message.Content, nil
}

// classifyError maps completion failures onto the package sentinels so
// callers can give quota and connectivity problems distinct handling.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		log.Warn().Err(err).Msg("Generative backend rejected completion for quota reasons")
		return fmt.Errorf("%w: %v", ErrQuota, err)
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		log.Warn().Err(err).Msg("Generative backend unreachable")
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	log.Error().Err(err).Msg("Failed to get chat completion")
	return fmt.Errorf("failed to get chat completion: %w", err)
}
