// Package aitest provides a scripted ai.Service for tests.
package aitest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/julianstephens/harmony/internal/ai"
)

// Fake records requests and answers them from the configured funcs. A nil
// func answers with an empty result.
type Fake struct {
	mu sync.Mutex

	StructuredFn func(ctx context.Context, req ai.StructuredRequest) ([]byte, error)
	ConverseFn   func(ctx context.Context, req ai.ConverseRequest) (ai.Reply, error)

	StructuredCalls []ai.StructuredRequest
	ConverseCalls   []ai.ConverseRequest
}

var _ ai.Service = (*Fake)(nil)

func (f *Fake) GenerateStructured(ctx context.Context, req ai.StructuredRequest) ([]byte, error) {
	f.mu.Lock()
	f.StructuredCalls = append(f.StructuredCalls, req)
	fn := f.StructuredFn
	f.mu.Unlock()

	if fn == nil {
		return []byte("[]"), nil
	}
	return fn(ctx, req)
}

func (f *Fake) Converse(ctx context.Context, req ai.ConverseRequest) (ai.Reply, error) {
	f.mu.Lock()
	f.ConverseCalls = append(f.ConverseCalls, req)
	fn := f.ConverseFn
	f.mu.Unlock()

	if fn == nil {
		return ai.Reply{}, nil
	}
	return fn(ctx, req)
}

// Calls returns how many requests of either kind were made.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.StructuredCalls) + len(f.ConverseCalls)
}

// Returning answers every structured request with v encoded as JSON.
func Returning(v any) func(context.Context, ai.StructuredRequest) ([]byte, error) {
	return func(context.Context, ai.StructuredRequest) ([]byte, error) {
		return json.Marshal(v)
	}
}

// Raw answers every structured request with body verbatim.
func Raw(body string) func(context.Context, ai.StructuredRequest) ([]byte, error) {
	return func(context.Context, ai.StructuredRequest) ([]byte, error) {
		return []byte(body), nil
	}
}
