package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseExtractionResponse turns the raw completion text into a
// FieldResponse. The service wraps its answer in code fences often enough
// that stripping them is part of the contract; any remaining parse failure
// means "no AI signal" and is reported as an error for the caller to
// degrade on, never to propagate.
func ParseExtractionResponse(raw string) (FieldResponse, error) {
	var resp FieldResponse

	clean := stripFences(strings.TrimSpace(raw))
	jsonText := extractJSON(clean)

	if err := json.Unmarshal([]byte(jsonText), &resp); err != nil {
		return FieldResponse{}, fmt.Errorf("malformed JSON in AI response: %w", err)
	}

	if resp.Confidence < 0 {
		resp.Confidence = 0
	}
	if resp.Confidence > 100 {
		resp.Confidence = 100
	}
	return resp, nil
}

// AmountString normalizes the amount field, which models return as either
// a JSON string or a bare number.
func (r FieldResponse) AmountString() string {
	switch v := r.Amount.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// stripFences removes leading and trailing ``` markers.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSON returns the first balanced {...} block.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return s
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return s[start:]
}
