// Package localize threads a user question through the generative
// backend in the user's own language. The direct path prompts the model
// natively; when that fails or comes back too thin, the question pivots
// through English: translate, generate, translate back.
package localize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lokbasha/lokbasha/internal/infrastructure/genai"
	"github.com/lokbasha/lokbasha/internal/infrastructure/translate"
	"github.com/lokbasha/lokbasha/internal/languages"
	"github.com/lokbasha/lokbasha/internal/textproc"
	"github.com/rs/zerolog/log"
)

const (
	// minQuestionRunes and maxQuestionRunes bound accepted input.
	minQuestionRunes = 3
	maxQuestionRunes = 1000
)

var (
	// ErrUnsupportedLanguage is returned for language codes outside the registry.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrQuestionTooShort is returned for inputs under minQuestionRunes.
	ErrQuestionTooShort = errors.New("question is too short")
	// ErrQuestionTooLong is returned for inputs over maxQuestionRunes.
	ErrQuestionTooLong = errors.New("question is too long")
)

// pivotPrompt wraps the translated question for the fallback path.
const pivotPrompt = "Answer this question comprehensively: %s"

// Generator produces text from a prompt. Satisfied by *genai.Service.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) (string, error)
}

// Result is a localized reply.
type Result struct {
	Reply    string
	Language string
	// Pivoted reports whether the reply went through the translation
	// fallback rather than native generation.
	Pivoted bool
}

type Service struct {
	generator  Generator
	translator translate.Translator
	registry   *languages.Registry
}

func NewService(generator Generator, translator translate.Translator, registry *languages.Registry) (*Service, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("language registry is required")
	}
	return &Service{
		generator:  generator,
		translator: translator,
		registry:   registry,
	}, nil
}

// Registry exposes the language registry backing this service.
func (s *Service) Registry() *languages.Registry {
	return s.registry
}

// Localize answers question in the language named by langCode, taking
// history as conversational context. The reply is scrubbed of repeated
// fragments and gets a trailer of deduplicated reference links.
func (s *Service) Localize(ctx context.Context, question, langCode string, history []genai.Message) (*Result, error) {
	question = strings.TrimSpace(question)
	if utf8.RuneCountInString(question) < minQuestionRunes {
		return nil, ErrQuestionTooShort
	}
	if utf8.RuneCountInString(question) > maxQuestionRunes {
		return nil, ErrQuestionTooLong
	}

	lang, ok := s.registry.Lookup(langCode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, langCode)
	}

	// Direct path: native system prompt, no translation.
	reply, directErr := s.direct(ctx, question, lang, history)
	if directErr == nil {
		return &Result{Reply: reply, Language: lang.Code, Pivoted: false}, nil
	}

	if lang.IsPivot() || s.translator == nil {
		// English has no pivot to fall back through.
		return nil, directErr
	}

	log.Warn().
		Err(directErr).
		Str("language", lang.Code).
		Msg("Direct generation failed, falling back to pivot translation")

	reply, err := s.pivot(ctx, question, lang, history)
	if err != nil {
		// The pivot failing after the direct path already failed is the
		// terminal condition; report the fallback error.
		return nil, fmt.Errorf("pivot fallback: %w", err)
	}
	return &Result{Reply: reply, Language: lang.Code, Pivoted: true}, nil
}

// direct asks the model to answer natively in the target language.
func (s *Service) direct(ctx context.Context, question string, lang *languages.Language, history []genai.Message) (string, error) {
	raw, err := s.generator.Generate(ctx, genai.Request{
		SystemPrompt: lang.SystemPrompt,
		History:      history,
		Prompt:       question,
		Config:       lang.Generation,
	})
	if err != nil {
		return "", err
	}

	reply := textproc.CleanRepeated(strings.TrimSpace(raw))
	if utf8.RuneCountInString(reply) < lang.MinReplyRunes {
		return "", fmt.Errorf("reply below %d runes for %s", lang.MinReplyRunes, lang.Code)
	}

	if links := textproc.FormatLinks(reply); links != "" {
		reply += links
	}
	return reply, nil
}

// pivot translates the question to English, generates there and
// translates the answer back.
func (s *Service) pivot(ctx context.Context, question string, lang *languages.Language, history []genai.Message) (string, error) {
	pivot := s.registry.Pivot()

	pivotQuestion, err := s.translator.Translate(ctx, question, lang.Code, pivot.Code)
	if err != nil {
		return "", fmt.Errorf("translate question to pivot: %w", err)
	}

	answer, err := s.generator.Generate(ctx, genai.Request{
		SystemPrompt: pivot.SystemPrompt,
		History:      history,
		Prompt:       fmt.Sprintf(pivotPrompt, pivotQuestion),
		Config:       pivot.Generation,
	})
	if err != nil {
		return "", err
	}

	localized, err := s.translator.Translate(ctx, strings.TrimSpace(answer), pivot.Code, lang.Code)
	if err != nil {
		return "", fmt.Errorf("translate reply from pivot: %w", err)
	}

	return textproc.CleanRepeated(localized), nil
}
