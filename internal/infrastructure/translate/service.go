// Package translate is the client for the external translation backend.
// The wire format is LibreTranslate-compatible: POST /translate with the
// text, source and target codes, returning the translated text.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lokbasha/lokbasha/internal/chunker"
	"github.com/lokbasha/lokbasha/internal/config"
	"github.com/rs/zerolog/log"
)

// Translator converts text between two languages identified by ISO codes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type Service struct {
	baseURL   string
	apiKey    string
	maxTokens int
	client    *http.Client
}

type request struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type response struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// NewService builds the translation client from environment config.
// Returns nil when no backend URL is configured.
func NewService() *Service {
	log.Info().Msg("Initialising translation service")

	url := config.GetTranslateURL()
	if url == "" {
		log.Warn().Msg("Translation service not configured - TRANSLATE_API_URL missing")
		return nil
	}

	return &Service{
		baseURL:   strings.TrimRight(url, "/"),
		apiKey:    config.GetTranslateKey(),
		maxTokens: config.GetTranslateMaxTokens(),
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Translate converts text from source to target. Inputs over the
// backend's token budget are split into chunks, translated one at a time
// and re-joined. Identical source and target is a no-op.
func (s *Service) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == target || strings.TrimSpace(text) == "" {
		return text, nil
	}

	chunks := chunker.SplitText(text, s.maxTokens)
	if len(chunks) == 1 {
		return s.translateChunk(ctx, chunks[0], source, target)
	}

	log.Debug().
		Int("chunks", len(chunks)).
		Str("source", source).
		Str("target", target).
		Msg("Translating oversized text in chunks")

	translated := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := s.translateChunk(ctx, chunk, source, target)
		if err != nil {
			return "", err
		}
		translated = append(translated, out)
	}
	return strings.Join(translated, " "), nil
}

func (s *Service) translateChunk(ctx context.Context, text, source, target string) (string, error) {
	body, err := json.Marshal(request{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: s.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("encode translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call translation backend: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read translation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().
			Int("status", resp.StatusCode).
			Str("source", source).
			Str("target", target).
			Msg("Translation backend returned an error")
		return "", fmt.Errorf("translation backend returned status %d", resp.StatusCode)
	}

	var out response
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("decode translation response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("translation backend error: %s", out.Error)
	}
	if out.TranslatedText == "" {
		return "", fmt.Errorf("translation backend returned empty text")
	}

	return out.TranslatedText, nil
}
