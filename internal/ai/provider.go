package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is a chat-completion backend. Implementations must map all
// upstream failures (transport, non-2xx, malformed body) to an error.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
