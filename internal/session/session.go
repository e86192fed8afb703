package session

import (
	"context"
	"log"
	"sync"
)

// Session pairs one external identity's context with its current state
// and dispatches inbound events to it. A mutex serializes turns: event
// N+1 for this identity does not start until event N has installed its
// next state. Unrelated identities dispatch concurrently.
type Session struct {
	mu       sync.Mutex
	sc       *SessionContext
	state    State
	services *Services
}

// Context exposes the session's context bundle (read-mostly; mutated
// only inside a dispatch, which holds the session lock).
func (s *Session) Context() *SessionContext {
	return s.sc
}

// HandleCommand handles an explicit command. "start" and "menu" both
// land on the top-level menu, or on onboarding when no registered user
// is attached yet.
func (s *Session) HandleCommand(ctx context.Context, t *Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.services = s.services
	return s.toEntry(ctx, t)
}

// HandleMessage handles free text. The current state gets the first
// look; unhandled text from a registered user enters the translate
// intake flow, which is the engine's default consumer of free text.
func (s *Session) HandleMessage(ctx context.Context, t *Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.services = s.services

	if s.state == nil {
		if s.sc.User == nil {
			return s.toEntry(ctx, t)
		}
		s.state = newTranslateIntakeState(s.sc)
	}

	out, err := s.state.OnMessage(ctx, t)
	if err != nil {
		return s.recover(ctx, t, err)
	}
	if out.unhandled {
		if s.sc.User == nil {
			return s.toEntry(ctx, t)
		}
		out, err = newTranslateIntakeState(s.sc).OnMessage(ctx, t)
		if err != nil {
			return s.recover(ctx, t, err)
		}
		if out.unhandled {
			return s.toEntry(ctx, t)
		}
	}
	s.install(out.next)
	return nil
}

// HandleSelection handles a pressed button. A token the current state
// does not recognize falls back to the entry screen; the user is never
// left on a broken screen.
func (s *Session) HandleSelection(ctx context.Context, t *Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.services = s.services

	if s.state == nil {
		return s.toEntry(ctx, t)
	}

	out, err := s.state.OnSelection(ctx, t)
	if err != nil {
		return s.recover(ctx, t, err)
	}
	if out.unhandled {
		return s.toEntry(ctx, t)
	}
	s.install(out.next)
	return nil
}

// entryScreen renders the default screen for this identity: onboarding
// while no registered user is attached, the top-level menu otherwise.
func (s *Session) entryScreen(ctx context.Context, t *Turn) (State, error) {
	if s.sc.User == nil {
		return newOnboardingState(s.sc).Show(ctx, t)
	}
	return newMenuState(s.sc).Show(ctx, t, "")
}

func (s *Session) toEntry(ctx context.Context, t *Turn) error {
	next, err := s.entryScreen(ctx, t)
	if err != nil {
		return s.recover(ctx, t, err)
	}
	s.state = next
	return nil
}

// install atomically replaces the current state. A nil next keeps the
// current state (a state that only re-rendered in place).
func (s *Session) install(next State) {
	if next != nil {
		s.state = next
	}
}

// recover handles a failed turn: report it, then park the user on a
// navigable screen with a generic try-again note. The previous state
// stays current if even that render fails.
func (s *Session) recover(ctx context.Context, t *Turn, cause error) error {
	log.Printf("⚠️ session %s: turn failed: %v", s.sc.Identity.Ref(), cause)
	var next State
	var err error
	if s.sc.User == nil {
		next, err = newOnboardingState(s.sc).Show(ctx, t)
	} else {
		tryAgain := t.text(ctx, s.sc.User.Language, "error.try_again", nil)
		next, err = newMenuState(s.sc).Show(ctx, t, tryAgain)
	}
	if err != nil {
		return cause
	}
	s.state = next
	return nil
}
