package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON decodes the first JSON object in model output into v.
// A fenced ```json block wins over a bare {...} span. Slightly broken
// JSON (trailing commas, single quotes) is repaired before decoding.
func ExtractJSON(text string, v any) bool {
	candidate := ""

	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return false
		}
		candidate = text[start : end+1]
	}

	if !strings.HasPrefix(candidate, "{") {
		return false
	}

	if json.Unmarshal([]byte(candidate), v) == nil {
		return true
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(repaired), v) == nil
}
