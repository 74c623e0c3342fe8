package withrottle

// EventKind identifies the point in the engine at which an Observer is invoked.
type EventKind int

const (
	// EventLineReceived is emitted for every framed inbound line.
	EventLineReceived EventKind = iota
	// EventLineSent is emitted for every outgoing command, without the delimiter.
	EventLineSent
	// EventOverflow is emitted with the truncated content of a discarded over-long line.
	EventOverflow
	// EventUnknownCommand is emitted for inbound lines no decoder claims.
	EventUnknownCommand
	// EventUnknownAction is emitted for locomotive actions with an unrecognized sub-action.
	EventUnknownAction
)

func (k EventKind) String() string {
	switch k {
	case EventLineReceived:
		return "line_received"
	case EventLineSent:
		return "line_sent"
	case EventOverflow:
		return "overflow"
	case EventUnknownCommand:
		return "unknown_command"
	case EventUnknownAction:
		return "unknown_action"
	default:
		return "unknown"
	}
}

// Observer is an optional diagnostic hook. It is called synchronously and
// receives a copy of the line involved.
type Observer func(kind EventKind, line string)
