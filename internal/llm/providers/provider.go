// File path: internal/llm/providers/provider.go
package providers

import "context"

// Message is one turn of a chat exchange.
type Message struct {
	Role    string
	Content string
}

// Provider abstracts a chat-completion backend.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}
