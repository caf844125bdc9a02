// Package textproc post-processes generated replies: collapsing the
// stutter some models produce in Indic scripts and normalising the link
// sections they append.
package textproc

import "strings"

// CleanRepeated removes consecutive repeated words and short repeated
// phrases (two and three words) from text. Generated Indic text is prone
// to echoing fragments, so the reply is scrubbed before display.
func CleanRepeated(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	// Drop consecutive duplicate words.
	deduped := words[:0:0]
	for i, word := range words {
		if i == 0 || word != words[i-1] {
			deduped = append(deduped, word)
		}
	}

	// Drop immediately repeated two and three word phrases.
	var out []string
	for i := 0; i < len(deduped); {
		if n := repeatLen(deduped, i); n > 0 {
			i += n
			continue
		}
		out = append(out, deduped[i])
		i++
	}

	return strings.Join(out, " ")
}

// repeatLen reports the length of the phrase starting at i that echoes
// the phrase immediately before it, or 0 when there is no echo.
func repeatLen(words []string, i int) int {
	for _, n := range []int{3, 2} {
		if i < n || i+n > len(words) {
			continue
		}
		if phraseEqual(words[i:i+n], words[i-n:i]) {
			return n
		}
	}
	return 0
}

func phraseEqual(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
