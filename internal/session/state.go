package session

import "context"

// State is one node of the conversation's screen graph. A handler is a
// function from (current data + event) to a rendered screen and the
// next state; whether it consumed the event is an explicit part of the
// Outcome, not an error.
type State interface {
	OnMessage(ctx context.Context, t *Turn) (Outcome, error)
	OnSelection(ctx context.Context, t *Turn) (Outcome, error)
}

// Outcome is the tagged result of a dispatch: either the next current
// state (possibly the same instance), or "unhandled", which makes the
// Session fall back so the turn is never dropped.
type Outcome struct {
	next      State
	unhandled bool
}

func Next(s State) Outcome { return Outcome{next: s} }
func Unhandled() Outcome   { return Outcome{unhandled: true} }

// Purpose tags what a caller opened a reusable child screen for, so the
// caller can route the child's result without captured closures.
type Purpose int

const (
	PurposeOnboardLanguage Purpose = iota
	PurposeOnboardName
	PurposeSettingsLanguage
	PurposeSettingsName
	PurposeSourceLanguage
)

// Payload carries a child screen's result back to its caller. Exactly
// one field is set, matching the continuation's purpose.
type Payload struct {
	Language string
	Name     string
}

// Caller is implemented by states that open reusable child screens
// (language picker, name prompt).
type Caller interface {
	State
	// Resume re-renders the caller's own screen after the child is
	// dismissed with "back", and returns the caller.
	Resume(ctx context.Context, t *Turn) (State, error)
	// Complete consumes the child's result and decides the next state.
	Complete(ctx context.Context, purpose Purpose, payload Payload, t *Turn) (State, error)
}

// Continuation is the explicit record a child screen holds instead of a
// parent link: the state to return control to, and the discriminated
// purpose it was opened for. The same child screen is reused from
// onboarding, settings and the translation result with different
// continuations.
type Continuation struct {
	Caller  Caller
	Purpose Purpose
}

// base supplies the default "this state does not accept that event
// kind" handlers; concrete states embed it and override what they accept.
type base struct {
	sc *SessionContext
}

func (b *base) OnMessage(ctx context.Context, t *Turn) (Outcome, error) {
	return Unhandled(), nil
}

func (b *base) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	return Unhandled(), nil
}
