// Package chunker splits text by estimated token count so translation
// requests stay inside the backend's per-request budget.
package chunker

import "strings"

// DefaultMaxTokens is the default maximum tokens per chunk.
const DefaultMaxTokens = 3000

// EstimateTokens estimates the token count for a text.
// Uses a simple heuristic: ~4 characters per token.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// SplitText splits a single text into chunks that don't exceed maxTokens,
// breaking on paragraph boundaries first and sentence-ish boundaries
// inside oversized paragraphs. Whitespace between chunks is normalised to
// a single separator, so Join(chunks) reads the same as the input.
func SplitText(text string, maxTokens int) []string {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if EstimateTokens(text) <= maxTokens {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	var pieces []string
	for _, para := range strings.Split(text, "\n\n") {
		if para == "" {
			continue
		}
		if EstimateTokens(para) <= maxTokens {
			pieces = append(pieces, para)
			continue
		}
		pieces = append(pieces, splitLongParagraph(para, maxTokens)...)
	}

	return packPieces(pieces, maxTokens)
}

// splitLongParagraph breaks a paragraph on sentence terminators, falling
// back to word boundaries when a single sentence is still too large.
func splitLongParagraph(para string, maxTokens int) []string {
	sentences := splitAfterAny(para, ".!?।")

	var out []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if EstimateTokens(sentence) <= maxTokens {
			out = append(out, sentence)
			continue
		}

		// A single run-on sentence larger than the budget: split on words.
		words := strings.Fields(sentence)
		var current strings.Builder
		for _, word := range words {
			if current.Len() > 0 && EstimateTokens(current.String()+" "+word) > maxTokens {
				out = append(out, current.String())
				current.Reset()
			}
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(word)
		}
		if current.Len() > 0 {
			out = append(out, current.String())
		}
	}
	return out
}

// splitAfterAny splits s after each occurrence of any rune in cutset,
// keeping the terminator with the preceding segment.
func splitAfterAny(s, cutset string) []string {
	var parts []string
	start := 0
	for i, r := range s {
		if strings.ContainsRune(cutset, r) {
			parts = append(parts, s[start:i+len(string(r))])
			start = i + len(string(r))
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// packPieces greedily joins consecutive pieces into chunks within the
// token budget. Each piece is kept whole - never split further here.
func packPieces(pieces []string, maxTokens int) []string {
	var chunks []string
	var current strings.Builder
	currentTokens := 0

	for _, piece := range pieces {
		pieceTokens := EstimateTokens(piece)

		if currentTokens+pieceTokens > maxTokens && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentTokens = 0
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(piece)
		currentTokens += pieceTokens
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
