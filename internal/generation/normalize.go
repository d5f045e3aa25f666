package generation

import "strings"

// NormalizeResponse strips formatting artifacts from raw model output and
// extracts the first balanced-looking JSON span.
//
// The extraction rule is deliberately bounded: one fence pair, then first `{`
// to last `}`. It tolerates a single leading/trailing prose wrapper; it is
// not a tolerant parser and must not grow into one — parse failures resolve
// to fallback records downstream.
func NormalizeResponse(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```json") {
		text = stripFence(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = stripFence(text, "```")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		text = text[start : end+1]
	}

	return text
}

func stripFence(text, marker string) string {
	text = strings.TrimSpace(strings.TrimPrefix(text, marker))
	if strings.HasSuffix(text, "```") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "```"))
	}
	return text
}
