package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "plain error",
			err:      stderrors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped sentinel gets hint",
			err:      fmt.Errorf("open store: %w", ErrNotInitialized),
			expected: "Error: open store: storage not initialized (hint: run 'harmony init' first)",
		},
		{
			name:     "missing key hint",
			err:      ErrMissingAPIKey,
			expected: "Error: no Gemini API key configured (hint: set API_KEY, pass --api-key, or run 'harmony config set-key')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s", "document")
	if got != "Error: failed to load document" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestHint(t *testing.T) {
	if h := Hint(stderrors.New("other")); h != "" {
		t.Errorf("Hint(other) = %q, want empty", h)
	}
	if h := Hint(fmt.Errorf("x: %w", ErrNotSignedIn)); h != "run 'harmony login'" {
		t.Errorf("Hint(ErrNotSignedIn) = %q", h)
	}
}
