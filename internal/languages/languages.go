// Package languages holds the registry of languages the assistant can
// answer in, together with the per-language prompting configuration.
package languages

import (
	"golang.org/x/text/language"
)

// PivotCode is the intermediate language used when a reply cannot be
// produced natively. The generative backend is strongest in English, so
// regional questions fall back to translate -> generate -> translate back.
const PivotCode = "en"

// GenerationConfig carries the sampling parameters used for a language.
type GenerationConfig struct {
	Temperature float32
	TopP        float32
	MaxTokens   int
	Stop        []string
}

// Language describes one supported assistant language.
type Language struct {
	Code         string // ISO 639-1 code, also the translation API code
	Name         string // English display name
	NativeName   string
	Welcome      string // native greeting shown when the widget loads
	SystemPrompt string
	// MinReplyRunes is the shortest direct reply considered usable.
	// Shorter replies trigger the pivot fallback.
	MinReplyRunes int
	Generation    GenerationConfig
	Tag           language.Tag
}

// IsPivot reports whether the language is the pivot language itself,
// in which case no translation step is needed.
func (l *Language) IsPivot() bool {
	return l.Code == PivotCode
}

// Registry resolves language codes, including regional variants such as
// "hi-IN", to a supported Language.
type Registry struct {
	languages []*Language
	matcher   language.Matcher
	byCode    map[string]*Language
}

// NewRegistry builds a registry over the default language set.
func NewRegistry() *Registry {
	return newRegistry(defaultLanguages())
}

func newRegistry(langs []*Language) *Registry {
	tags := make([]language.Tag, len(langs))
	byCode := make(map[string]*Language, len(langs))
	for i, l := range langs {
		l.Tag = language.MustParse(l.Code)
		tags[i] = l.Tag
		byCode[l.Code] = l
	}
	return &Registry{
		languages: langs,
		matcher:   language.NewMatcher(tags),
		byCode:    byCode,
	}
}

// All returns the supported languages in registration order.
func (r *Registry) All() []*Language {
	return r.languages
}

// Lookup resolves a language code to a supported language. Regional
// variants match their base language. The second return value is false
// when the code is unparseable or matches nothing closely enough.
func (r *Registry) Lookup(code string) (*Language, bool) {
	if l, ok := r.byCode[code]; ok {
		return l, true
	}

	tag, err := language.Parse(code)
	if err != nil {
		return nil, false
	}

	_, index, confidence := r.matcher.Match(tag)
	if confidence < language.High {
		return nil, false
	}
	return r.languages[index], true
}

// Pivot returns the pivot language entry.
func (r *Registry) Pivot() *Language {
	return r.byCode[PivotCode]
}
