package withrottle

const lineDelimiter = '\n'

type frameResult int

const (
	frameNone     frameResult = iota // byte buffered, or delimiter absorbed on an empty buffer
	frameLine                        // a complete line is available
	frameOverflow                    // the buffer filled up; the truncated content was discarded
)

// lineFramer splits a byte stream into newline-delimited lines.
//
// The buffer is a fixed arena reused across frames: a line returned by feed
// is only valid until the next call to feed. One slot is reserved for the
// terminator, so a line holds at most capacity-1 bytes before overflow.
//
// lineFramer is NOT goroutine-safe.
type lineFramer struct {
	buf  []byte
	next int // where the next byte goes
}

func newLineFramer(capacity int) *lineFramer {
	return &lineFramer{buf: make([]byte, capacity)}
}

// feed appends b to the buffer.
//
// On frameLine the returned slice holds the line without the delimiter.
// On frameOverflow it holds the truncated content, for diagnostics only.
func (f *lineFramer) feed(b byte) ([]byte, frameResult) {
	if b == lineDelimiter {
		// peers in server role send two delimiters per command; the second
		// arrives on an empty buffer and is absorbed here
		n := f.next
		f.next = 0
		if n == 0 {
			return nil, frameNone
		}

		return f.buf[:n], frameLine
	}

	f.buf[f.next] = b
	f.next++

	if f.next == len(f.buf)-1 {
		n := f.next
		f.next = 0

		return f.buf[:n], frameOverflow
	}

	return nil, frameNone
}

// reset discards any partially accumulated line.
func (f *lineFramer) reset() {
	f.next = 0
}

// buffered returns the number of bytes of the pending partial line.
func (f *lineFramer) buffered() int {
	return f.next
}
