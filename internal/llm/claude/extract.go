package claude

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when the text contains no brace-delimited slice.
var ErrNoJSONObject = errors.New("no JSON object found in text")

// ExtractJSONObject slices the text from the first '{' to the last '}'
// inclusive. Models wrap their JSON in prose or markdown fences; this strips
// the wrapping. Known failure modes: a '{' in prose before the object shifts
// the start left (the subsequent parse fails), and two top-level objects in
// one response produce an unparseable slice. Both resolve to a fallback
// analysis upstream.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}
