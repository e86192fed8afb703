package entities

import "github.com/google/uuid"

// User is a registered account with a display name and a preferred
// language (BCP-47 code) used for explanations and translations.
type User struct {
	ID       uuid.UUID
	Name     string
	Language string
}
