package events

type Type uint8

const (
	Message Type = iota
	Error
	Subscribe
)

func (t Type) String() string {
	switch t {
	case Message:
		return "message"
	case Error:
		return "error"
	case Subscribe:
		return "subscribe"
	default:
		return "unknown"
	}
}

// Event is a single progress notification emitted by a running pipeline.
type Event struct {
	Type    Type
	Step    string
	Message string
	Error   error

	// Completion resolves when the step announced by a Message event finishes.
	Completion *Completion
}

type Handler interface {
	Handle(event Event)
}
