package content

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	imageMarkerRe = regexp.MustCompile(`\[CONTENT IMAGE:.*?\]`)
	sourceLineRe  = regexp.MustCompile(`Source:\s*https?://\S+`)
	h2MarkerRe    = regexp.MustCompile(`H2:\s*`)
	multiBlankRe  = regexp.MustCompile(`\n{3,}`)
	blankLineRe   = regexp.MustCompile(`\n\s*\n`)
	runSpaceRe    = regexp.MustCompile(`[ \t]+`)
	bracketRe     = regexp.MustCompile(`\[.*?\]`)
)

// Clean normalizes raw scraped article text into plain markdown: image
// markers and source attributions are stripped, H2: prefixes become markdown
// headings, and whitespace is collapsed. Some scrapes wrap the text in a
// JSON envelope with a "content" field; that is unwrapped first.
func Clean(raw string) string {
	text := raw
	var envelope struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil && envelope.Content != "" {
		text = envelope.Content
	}

	text = imageMarkerRe.ReplaceAllString(text, "")
	text = sourceLineRe.ReplaceAllString(text, "")
	text = h2MarkerRe.ReplaceAllString(text, "## ")
	text = multiBlankRe.ReplaceAllString(text, "\n\n")
	text = blankLineRe.ReplaceAllString(text, "\n\n")
	text = runSpaceRe.ReplaceAllString(text, " ")
	text = bracketRe.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// WordCount counts whitespace-separated words in cleaned text.
func WordCount(cleaned string) int {
	if cleaned == "" {
		return 0
	}
	return len(strings.Fields(cleaned))
}
