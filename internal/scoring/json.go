package scoring

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeResponse parses a model response that may be wrapped in markdown
// code fences into target.
func decodeResponse(text string, target any) error {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx != -1 {
			cleaned = cleaned[idx+1:]
		}
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}
