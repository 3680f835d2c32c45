package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeArray parses a JSON array response. Code fences some models wrap
// around JSON are stripped first.
func DecodeArray[T any](raw []byte) ([]T, error) {
	body := strings.TrimSpace(string(raw))
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyResponse
	}

	var out []T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	return out, nil
}
