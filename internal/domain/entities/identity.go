package entities

import "github.com/google/uuid"

// ExternalIdentity is a contact on a chat platform, keyed by
// (platform, platform user id). It may be linked to a registered User
// once onboarding completes; the key itself never changes.
type ExternalIdentity struct {
	Platform       string
	PlatformUserID string
	UserID         *uuid.UUID
}

// Ref is the canonical session-registry key for this identity.
func (e *ExternalIdentity) Ref() string {
	return e.Platform + "/" + e.PlatformUserID
}
