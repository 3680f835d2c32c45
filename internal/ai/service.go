// Package ai is the boundary to the generative model. Service is the only
// thing the planner sees, so the provider can be swapped or faked.
package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model answers with no content.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Service is the capability the planner needs from a model provider.
type Service interface {
	// GenerateStructured asks for JSON that matches req.Schema and returns the
	// raw response body.
	GenerateStructured(ctx context.Context, req StructuredRequest) ([]byte, error)
	// Converse sends one chat turn with optional tools.
	Converse(ctx context.Context, req ConverseRequest) (Reply, error)
}

type StructuredRequest struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Schema            *Schema
}

// Turn is one prior message of a conversation.
type Turn struct {
	FromModel bool
	Text      string
}

type ConverseRequest struct {
	Model             string
	SystemInstruction string
	Message           string
	History           []Turn
	Tools             []Tool
}

// Tool declares a function the model may call.
type Tool struct {
	Name        string
	Description string
	Parameters  *Schema
}

// ToolCall is a function invocation requested by the model. Args holds the
// decoded JSON arguments, so numbers arrive as float64.
type ToolCall struct {
	Name string
	Args map[string]any
}

// Reply is the model's answer to a Converse call. ToolCalls takes precedence
// over Text when both are present.
type Reply struct {
	Text      string
	ToolCalls []ToolCall
}
