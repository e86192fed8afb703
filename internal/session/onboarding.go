package session

import (
	"context"
	"fmt"
	"slices"

	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
	"langbot/pkg/langname"
)

// onboardingState greets a first-time contact, confirms or picks the
// account language, collects a display name and creates the registered
// user. It is the entry screen for every identity with no linked user.
type onboardingState struct {
	base
	// language is the candidate account language: the platform's locale
	// hint at first render, or whatever the user picked since.
	language string
}

var _ Caller = (*onboardingState)(nil)

func newOnboardingState(sc *SessionContext) *onboardingState {
	return &onboardingState{base: base{sc: sc}}
}

// Show renders the language-confirmation screen when the platform hint
// is a supported target, and goes straight to the language picker when
// it is not.
func (s *onboardingState) Show(ctx context.Context, t *Turn) (State, error) {
	if s.language == "" {
		s.language = langname.Base(t.Event.Locale)
	}
	if slices.Contains(t.services.Translator.SupportedTargets(), s.language) {
		if err := t.show(ctx, s.confirmScreen(ctx, t)); err != nil {
			return nil, fmt.Errorf("render onboarding: %w", err)
		}
		return s, nil
	}

	hinted := langname.Name(s.language)
	if s.language == "" {
		hinted = "your language"
	}
	if err := t.show(ctx, output.Screen{
		Text: t.services.Messages.T("en", "onboarding.unsupported", map[string]any{"Language": hinted}),
	}); err != nil {
		return nil, fmt.Errorf("render onboarding: %w", err)
	}
	return newLanguagePickerState(s.sc, "en", Continuation{Caller: s, Purpose: PurposeOnboardLanguage}).Show(ctx, t)
}

func (s *onboardingState) confirmScreen(ctx context.Context, t *Turn) output.Screen {
	name := langname.Name(s.language)
	return output.Screen{
		Text: t.text(ctx, s.language, "onboarding.greeting", map[string]any{"Language": name}),
		Rows: [][]output.Button{{
			{
				Label: t.text(ctx, s.language, "onboarding.keep", map[string]any{"Language": name}) + " 👌",
				Token: "keep_language",
			},
			{
				Label: t.text(ctx, s.language, "onboarding.other", nil) + " 🙅",
				Token: "other_language",
			},
		}},
	}
}

func (s *onboardingState) OnSelection(ctx context.Context, t *Turn) (Outcome, error) {
	if s.language == "" {
		// Selection before any render (restarted process): rebuild.
		next, err := s.Show(ctx, t)
		return Next(next), err
	}

	switch t.Event.Token {
	case "keep_language":
		next, err := newNamePromptState(s.sc, s.language, Continuation{Caller: s, Purpose: PurposeOnboardName}).Show(ctx, t)
		return Next(next), err
	case "other_language":
		next, err := newLanguagePickerState(s.sc, s.language, Continuation{Caller: s, Purpose: PurposeOnboardLanguage}).Show(ctx, t)
		return Next(next), err
	}
	return Unhandled(), nil
}

func (s *onboardingState) Resume(ctx context.Context, t *Turn) (State, error) {
	if err := t.show(ctx, s.confirmScreen(ctx, t)); err != nil {
		return nil, fmt.Errorf("render onboarding: %w", err)
	}
	return s, nil
}

func (s *onboardingState) Complete(ctx context.Context, purpose Purpose, payload Payload, t *Turn) (State, error) {
	switch purpose {
	case PurposeOnboardLanguage:
		s.language = payload.Language
		return newNamePromptState(s.sc, s.language, Continuation{Caller: s, Purpose: PurposeOnboardName}).Show(ctx, t)
	case PurposeOnboardName:
		return s.createUser(ctx, payload.Name, t)
	}
	return nil, fmt.Errorf("onboarding: unexpected continuation purpose %d", purpose)
}

// createUser persists the account, links the external identity to it
// and attaches the user to the shared session context. This is the one
// place the context's user goes from absent to present.
func (s *onboardingState) createUser(ctx context.Context, name string, t *Turn) (State, error) {
	user := &entities.User{Name: name, Language: s.language}
	if err := t.services.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	identity := s.sc.Identity
	if err := t.services.Identities.LinkUser(ctx, identity.Platform, identity.PlatformUserID, user.ID); err != nil {
		return nil, fmt.Errorf("link identity: %w", err)
	}
	identity.UserID = &user.ID
	s.sc.User = user

	welcome := t.text(ctx, user.Language, "onboarding.welcome", map[string]any{
		"Name":     user.Name,
		"Language": langname.Name(user.Language),
	})
	return newMenuState(s.sc).Show(ctx, t, welcome)
}
