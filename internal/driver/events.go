package driver

// EventKind marks the lifecycle stage of one file inside a directory check.
type EventKind uint8

const (
	// EventFileStart fires when a worker picks a file up.
	EventFileStart EventKind = iota
	// EventFileDone fires when a file's diagnostics are complete.
	EventFileDone
)

// Event is one progress notification from a directory check.
type Event struct {
	Kind     EventKind
	Path     string
	Findings int // only meaningful for EventFileDone
	Cached   bool
}

// Sink receives progress events. Implementations must be safe for
// concurrent Send calls.
type Sink interface {
	Send(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) Send(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

func send(sink Sink, ev Event) {
	if sink != nil {
		sink.Send(ev)
	}
}
