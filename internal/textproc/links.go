package textproc

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLinks is the number of reference links kept in a reply trailer.
const MaxLinks = 5

var (
	urlPattern       = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
	domainPattern    = regexp.MustCompile(`https?://(?:www\.)?([^/]+)`)
	validURLPattern  = regexp.MustCompile(`https?://[^/]*\.[^/]+`)
	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	// existingSections matches a model-emitted link section header in any
	// supported language so a stale section is dropped before the trailer
	// is rebuilt.
	existingSections = regexp.MustCompile(`(?s)\n\n(` +
		`(Related|Useful) Links` +
		`|Related resources` +
		`|(संबंधित|विश्वसनीय) लिंक्स` +
		`|(ബന്ധപ്പെട്ട|വിശ്വസനീയമായ) ലിങ്കുകൾ` +
		`|(தொடர்புடைய|நம்பகமான) இணைப்புகள்` +
		`|(సంబంధిత|విశ్వసనీయ) లింక్‌లు` +
		`):.*$`)
)

// ExtractDomain returns the host portion of a URL without the www prefix,
// or empty when the URL is malformed.
func ExtractDomain(url string) string {
	m := domainPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// FormatLinks pulls URLs out of a generated reply, deduplicates them by
// domain and returns a formatted trailer of at most MaxLinks references.
// Returns empty when the reply contains no usable URLs.
func FormatLinks(text string) string {
	// Strip any link section the model already appended, and unwrap
	// markdown links so only the raw URL remains.
	cleaned := existingSections.ReplaceAllString(text, "")
	cleaned = markdownLink.ReplaceAllString(cleaned, "$2")

	urls := urlPattern.FindAllString(cleaned, -1)
	if len(urls) == 0 {
		return ""
	}

	if len(urls) > MaxLinks*2 {
		urls = urls[:MaxLinks*2]
	}

	var valid []string
	seen := make(map[string]bool)
	for _, url := range urls {
		url = strings.TrimRight(strings.Trim(url, "()[].,!?"), ".")

		if !validURLPattern.MatchString(url) {
			continue
		}

		domain := ExtractDomain(url)
		if domain == "" || seen[domain] {
			continue
		}
		seen[domain] = true
		valid = append(valid, url)

		if len(valid) >= MaxLinks {
			break
		}
	}

	if len(valid) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n---\n\nRelated resources:\n")
	for _, url := range valid {
		display := strings.TrimPrefix(ExtractDomain(url), "www.")
		fmt.Fprintf(&b, "\n- [%s](%s)", display, url)
	}
	return b.String()
}
