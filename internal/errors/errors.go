package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/harmony/internal/logger"
)

// Sentinel errors shared across command boundaries. Each maps to a hint that
// Format appends for the user.
var (
	ErrNotInitialized = stderrors.New("storage not initialized")
	ErrMissingAPIKey  = stderrors.New("no Gemini API key configured")
	ErrNotSignedIn    = stderrors.New("not signed in")
)

var hints = map[error]string{
	ErrNotInitialized: "run 'harmony init' first",
	ErrMissingAPIKey:  "set API_KEY, pass --api-key, or run 'harmony config set-key'",
	ErrNotSignedIn:    "run 'harmony login'",
}

// Hint returns the follow-up suggestion for err, or "" when none applies.
func Hint(err error) string {
	for sentinel, hint := range hints {
		if stderrors.Is(err, sentinel) {
			return hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v (hint: %s)", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
