package domain

import "errors"

// Domain errors.
var (
	ErrIdentityNotFound     = errors.New("external identity not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrTranslationNotFound  = errors.New("translation not found")
	ErrUnsupportedTarget    = errors.New("target language is not supported")
	ErrUnsupportedPair      = errors.New("language pair is not supported")
	ErrDetectionUnavailable = errors.New("language detection is unavailable")
)
