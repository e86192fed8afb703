package session

// EventKind discriminates the inbound event kinds the engine accepts.
type EventKind int

const (
	// KindCommand is an explicit command ("start", "menu").
	KindCommand EventKind = iota
	// KindMessage is free text typed by the user.
	KindMessage
	// KindSelection is a pressed button, carrying its opaque token.
	KindSelection
)

// Event is one inbound chat event, already stripped of transport
// details by the adapter.
type Event struct {
	Kind    EventKind
	Command string
	Text    string
	Token   string
	// Locale is the platform's language hint for the user ("en-US"),
	// empty when the platform does not provide one.
	Locale string
}
