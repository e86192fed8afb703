package session

import (
	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

// SessionContext is the per-session bundle every state reads: the
// external identity, the resolved registered user (nil until onboarding
// completes) and an open language-model conversation. States share it
// by reference so a settings change is visible to every state at once.
type SessionContext struct {
	Identity  *entities.ExternalIdentity
	User      *entities.User
	Assistant output.Conversation
}

// Services are the process-wide collaborators handed to states through
// the Turn.
type Services struct {
	Translator output.TranslationService
	Identities output.IdentityRepository
	Users      output.UserRepository
	Vocabulary output.VocabularyRepository
	Messages   output.T
	Chatbot    output.Chatbot
}
