package ai

import (
	"encoding/json"
	"strings"
)

func stripMarkdownCodeFences(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if strings.HasPrefix(t, "```") {
			continue
		}
		out = append(out, ln)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// extractJSONPayload pulls the first balanced JSON object out of a
// free-text model reply. The decoder scan is robust against braces inside
// JSON strings and nested objects; naive first/last-brace indexing is not.
// Returns "" when the reply carries no parseable payload.
func extractJSONPayload(response string) string {
	s := strings.TrimSpace(response)
	if s == "" {
		return ""
	}

	s = stripMarkdownCodeFences(s)

	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:]))
		dec.UseNumber()
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			trimmed := strings.TrimSpace(string(raw))
			if strings.HasPrefix(trimmed, "{") {
				return trimmed
			}
		}
	}
	return ""
}
