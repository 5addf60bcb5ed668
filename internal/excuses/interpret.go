package excuses

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrParse means the model's output was not valid JSON even after fence
	// stripping.
	ErrParse = errors.New("excuses: model output is not valid JSON")
	// ErrSchema means the JSON parsed but did not contain two complete excuses.
	ErrSchema = errors.New("excuses: model output missing excuse fields")
)

// Interpret turns raw model output into a Pair. The model sometimes wraps its
// JSON in a markdown fence despite being told not to, so fences are stripped
// before parsing. ComedicStyle is stamped from the resolved style, not trusted
// from the model.
func Interpret(raw string, resolvedStyle string) (Pair, error) {
	cleaned := stripFences(raw)

	var pair Pair
	if err := json.Unmarshal([]byte(cleaned), &pair); err != nil {
		return Pair{}, ErrParse
	}

	if !completeItem(pair.Excuse1) || !completeItem(pair.Excuse2) {
		return Pair{}, ErrSchema
	}

	pair.ComedicStyle = resolvedStyle
	return pair, nil
}

func completeItem(item ExcuseItem) bool {
	return strings.TrimSpace(item.Title) != "" && strings.TrimSpace(item.Text) != ""
}

func stripFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
