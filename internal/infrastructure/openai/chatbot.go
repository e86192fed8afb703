package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"langbot/internal/ports/output"
)

var _ output.Chatbot = (*Service)(nil)

// Service opens chat-completion conversations used for free-form
// categorization prompts.
type Service struct {
	client *openai.Client
	model  string
}

// NewService creates a Service over the OpenAI API.
func NewService(apiKey string) *Service {
	return &Service{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

func (s *Service) StartConversation(systemPrompt string) output.Conversation {
	conversation := &Conversation{client: s.client, model: s.model}
	if systemPrompt != "" {
		conversation.history = append(conversation.history, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	return conversation
}

// Conversation is one running chat; prompts and answers accumulate so
// follow-up questions keep their context.
type Conversation struct {
	client  *openai.Client
	model   string
	history []openai.ChatCompletionMessage
}

func (c *Conversation) Prompt(ctx context.Context, text string) (string, error) {
	messages := append(c.history, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: 50,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	answer := resp.Choices[0].Message.Content
	c.history = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: answer,
	})
	return answer, nil
}
