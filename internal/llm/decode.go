package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrMalformedOutput marks a model response that could not be decoded into
// the requested JSON shape. Callers must not retry on it: the model already
// answered, and re-asking the same prompt is unlikely to help.
var ErrMalformedOutput = errors.New("malformed model output")

// StripCodeFences removes a surrounding markdown code fence from a model
// response. Models routinely wrap JSON in ```json ... ``` despite being asked
// not to.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// DecodeJSON parses a model response into v. It strips code fences, tries a
// strict parse, then falls back to jsonrepair for the usual model JSON
// defects (trailing commas, single quotes, truncation). Any failure is
// reported as ErrMalformedOutput.
func DecodeJSON(raw string, v any) error {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(cleaned)
	if repairErr != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, repairErr)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return nil
}
