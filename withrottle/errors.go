package withrottle

import "errors"

var (
	// ErrConfigNil indicates that a nil Config was provided.
	ErrConfigNil = errors.New("config is nil")

	// ErrNotConnected indicates that no transport is attached to the protocol engine.
	ErrNotConnected = errors.New("not connected")
)

var (
	// ErrSpeedOutOfRange indicates that a requested speed is outside [0, 126].
	ErrSpeedOutOfRange = errors.New("speed out of range, should be in range of [0, 126]")

	// ErrFunctionOutOfRange indicates that a requested function index is outside [0, 28].
	ErrFunctionOutOfRange = errors.New("function out of range, should be in range of [0, 28]")

	// ErrInvalidAddress indicates that a locomotive address is not of the form S<digits> or L<digits>.
	ErrInvalidAddress = errors.New("invalid locomotive address, should be S<digits> or L<digits>")

	// ErrNoLocomotive indicates that an operation needs a selected locomotive but none is selected.
	ErrNoLocomotive = errors.New("no locomotive selected")
)

var (
	// ErrNoData indicates a read from a transport with no buffered bytes.
	ErrNoData = errors.New("no data available")

	// ErrTransportClosed indicates that the transport has been closed.
	ErrTransportClosed = errors.New("transport closed")
)
