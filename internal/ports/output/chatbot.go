package output

import "context"

// Conversation is an open language-model conversation.
type Conversation interface {
	Prompt(ctx context.Context, text string) (string, error)
}

// Chatbot opens language-model conversations for sessions.
type Chatbot interface {
	StartConversation(systemPrompt string) Conversation
}
