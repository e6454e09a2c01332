package genai

import "context"

// Message is one chat message sent to a generation engine.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options bound a single generation call.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Engine produces raw text from system/user prompts. Two implementations
// exist: the model-backed HTTP client (oaihttp) and the deterministic
// template synthesizer (template) used when no credential is configured or a
// model reply is unusable. Callers pick one via a single policy decision.
type Engine interface {
	GenerateText(ctx context.Context, messages []Message, opts Options) (string, error)
}
