package output

import "context"

// Button is one pressable option; Token is the opaque selection token
// delivered back when the user picks it.
type Button struct {
	Label string
	Token string
}

// Screen is what a session state renders: a text block plus rows of
// buttons.
type Screen struct {
	Text string
	Rows [][]Button
}

// Chat renders screens into the conversation an event arrived from.
type Chat interface {
	// Render shows the screen as a new message.
	Render(ctx context.Context, screen Screen) error
	// Edit replaces the screen the user is currently looking at.
	Edit(ctx context.Context, screen Screen) error
}
