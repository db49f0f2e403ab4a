package ai

import "context"

// ChatRequest is one single-turn chat completion call.
type ChatRequest struct {
	System string // system instruction
	Prompt string // user message
	JSON   bool   // constrain the reply to a JSON object
	User   string // end-user identifier forwarded to the provider for tracing
}

// LLMProvider sends a chat request to an LLM and returns the raw text reply.
// Errors are *model.CompareError with a transport-level FailureKind.
type LLMProvider interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
