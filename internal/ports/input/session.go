package input

import (
	"context"

	"langbot/internal/session"
)

// SessionResolver is what a transport adapter needs from the session
// engine: the live session for the identity an event is tagged with.
type SessionResolver interface {
	Resolve(ctx context.Context, platform, platformUserID string) (*session.Session, error)
}
