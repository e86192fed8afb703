package entities

import (
	"time"

	"github.com/google/uuid"
)

// Vocabulary is one user's word collection for one language.
type Vocabulary struct {
	UserID    uuid.UUID
	Language  string
	WordCount int
}

// VocabularyWord is a single word a user is learning.
type VocabularyWord struct {
	Word          string
	Language      string
	Category      string
	UserID        uuid.UUID
	LearningScore int
	LastCheck     time.Time
}
