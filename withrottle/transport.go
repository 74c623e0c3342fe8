package withrottle

import (
	"io"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// Transport is the byte stream the protocol engine runs over.
//
// The engine only reads after DataAvailable returned true, and never expects
// a call to block. The transport may be backed by a TCP socket, a serial
// line or an in-memory pipe.
type Transport interface {
	// DataAvailable returns true if ReadByte can return a byte without blocking.
	DataAvailable() bool
	// ReadByte returns the next buffered byte.
	ReadByte() (byte, error)
	// WriteLine writes line followed by a newline.
	WriteLine(line []byte) error
}

const (
	DefaultReadChunkSize  = 512
	DefaultChunkQueueSize = 64

	enqueueRetryInterval = time.Millisecond
)

// StreamTransport adapts a blocking io.ReadWriteCloser, such as a net.Conn
// or a serial port, to the non-blocking Transport contract.
//
// A background goroutine reads the stream into a bounded chunk queue. When
// the queue is full the reader stalls, which applies backpressure to the
// peer. DataAvailable and ReadByte must be called from a single goroutine.
type StreamTransport struct {
	rw      io.ReadWriteCloser
	chunks  *xsync.MPMCQueueOf[[]byte]
	pending []byte

	stop      chan struct{}
	done      chan struct{}
	err       error // set by readLoop before done is closed
	closeOnce sync.Once
}

var _ Transport = (*StreamTransport)(nil)

// NewStreamTransport starts reading rw in the background.
func NewStreamTransport(rw io.ReadWriteCloser) *StreamTransport {
	t := &StreamTransport{
		rw:     rw,
		chunks: xsync.NewMPMCQueueOf[[]byte](DefaultChunkQueueSize),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go t.readLoop()

	return t
}

func (t *StreamTransport) readLoop() {
	defer close(t.done)

	buf := make([]byte, DefaultReadChunkSize)
	for {
		n, err := t.rw.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if !t.enqueue(chunk) {
				t.err = ErrTransportClosed
				return
			}
		}

		if err != nil {
			t.err = err
			return
		}
	}
}

func (t *StreamTransport) enqueue(chunk []byte) bool {
	if t.chunks.TryEnqueue(chunk) {
		return true
	}

	timer := time.NewTimer(enqueueRetryInterval)
	defer timer.Stop()

	for {
		select {
		case <-t.stop:
			return false
		case <-timer.C:
			if t.chunks.TryEnqueue(chunk) {
				return true
			}
			timer.Reset(enqueueRetryInterval)
		}
	}
}

// DataAvailable returns true if at least one received byte is buffered.
func (t *StreamTransport) DataAvailable() bool {
	if len(t.pending) > 0 {
		return true
	}

	chunk, ok := t.chunks.TryDequeue()
	if !ok {
		return false
	}
	t.pending = chunk

	return true
}

// ReadByte returns the next buffered byte, or ErrNoData if none is buffered.
func (t *StreamTransport) ReadByte() (byte, error) {
	if !t.DataAvailable() {
		return 0, ErrNoData
	}

	b := t.pending[0]
	t.pending = t.pending[1:]

	return b, nil
}

// WriteLine writes line followed by a newline in a single write.
func (t *StreamTransport) WriteLine(line []byte) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, lineDelimiter)

	_, err := t.rw.Write(buf)

	return err
}

// Err returns the error that ended the background reader, typically io.EOF
// once the peer closed the stream. It returns nil while the reader is running.
func (t *StreamTransport) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Close stops the background reader and closes the underlying stream.
func (t *StreamTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.stop)
		err = t.rw.Close()
	})

	return err
}
