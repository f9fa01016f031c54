package servo

// EventType names a session event.
type EventType string

const (
	EventMotorFound     EventType = "motor-found"
	EventAddressChanged EventType = "address-changed"
	EventProgramLoaded  EventType = "program-loaded"
	EventProgramRun     EventType = "program-run"
)

// Event records a successful state change on the session. Events exist
// for observers (status displays, the HTTP event stream); driver
// behavior never depends on them.
type Event struct {
	Type    EventType `json:"type"`
	Channel uint8     `json:"channel,omitempty"`
	Address uint8     `json:"address,omitempty"`
	Model   string    `json:"model,omitempty"`
	Slot    int       `json:"slot,omitempty"`
}

// Events returns the session's event feed. The channel is buffered;
// events are dropped rather than blocking driver operations when no one
// is draining it.
func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) emit(e Event) {
	select {
	case s.events <- e:
	default:
	}
}
