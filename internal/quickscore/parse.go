package quickscore

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var errUnparseable = errors.New("no result object in response")

// parsePayload interprets a delegate response body. Providers wrap the model
// output differently, so the chain is: direct JSON, an envelope under
// "content" / "candidates[0].content" / "output", then a brace-matched JSON
// object embedded in free text.
func parsePayload(body []byte) (Result, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err == nil {
		if raw, ok := env["content"]; ok {
			return resultFromRaw(raw)
		}
		if raw, ok := env["candidates"]; ok {
			var candidates []struct {
				Content json.RawMessage `json:"content"`
			}
			if err := json.Unmarshal(raw, &candidates); err == nil && len(candidates) > 0 {
				return resultFromRaw(candidates[0].Content)
			}
		}
		if raw, ok := env["output"]; ok {
			return resultFromRaw(raw)
		}
		// The body may itself be the result object.
		return resultFromRaw(body)
	}
	return resultFromText(string(body))
}

// resultFromRaw normalizes a JSON value: either the result object itself, or
// a string holding (or embedding) the result object.
func resultFromRaw(raw json.RawMessage) (Result, error) {
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		return resultFromText(inner)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Result{}, errUnparseable
	}
	return normalize(obj), nil
}

// resultFromText tries the text as JSON first, then the first-to-last brace
// substring.
func resultFromText(text string) (Result, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return normalize(obj), nil
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Result{}, errUnparseable
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return Result{}, errUnparseable
	}
	return normalize(obj), nil
}

func normalize(obj map[string]any) Result {
	return Result{
		Score:           coerceInt(obj["score"]),
		Skills:          coerceStrings(obj["skills"]),
		Recommendations: coerceStrings(obj["recommendations"]),
	}
}

func coerceInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return 0
}

func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
