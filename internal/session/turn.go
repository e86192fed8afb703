package session

import (
	"context"
	"log"

	"langbot/internal/ports/output"
)

// Turn bundles one inbound event with the chat it arrived from and the
// process services. A fresh Turn is built per event by the transport
// adapter; the Session fills in services before dispatching.
type Turn struct {
	Event    Event
	Chat     output.Chat
	services *Services
}

// show renders a screen: selections edit the message the pressed button
// was on, everything else renders a new message. Re-delivery of the
// same event therefore re-renders the same screen.
func (t *Turn) show(ctx context.Context, screen output.Screen) error {
	if t.Event.Kind == KindSelection {
		return t.Chat.Edit(ctx, screen)
	}
	return t.Chat.Render(ctx, screen)
}

// text resolves canonical English copy from the catalog and routes it
// through the translator into the target language. UI copy is
// re-translated on every render; identical strings hit the shared
// translation cache, so repeats are cheap. On routing failure the
// English copy is shown rather than failing the render.
func (t *Turn) text(ctx context.Context, target, key string, data map[string]any) string {
	msg := t.services.Messages.T("en", key, data)
	if target == "" || target == "en" {
		return msg
	}
	translated, err := t.services.Translator.Translate(ctx, msg, "en", target)
	if err != nil {
		log.Printf("⚠️ ui copy %q not translated into %s: %v", key, target, err)
		return msg
	}
	return translated.TargetText
}

func (t *Turn) backButton(ctx context.Context, target, token string) output.Button {
	return output.Button{
		Label: t.text(ctx, target, "common.back", nil) + " ⬅️",
		Token: token,
	}
}
