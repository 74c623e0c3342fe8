package withrottle

import (
	"sync/atomic"
)

// Metrics contains atomic counters for a protocol engine.
// Counters may be read from any goroutine, e.g. as the value of a prometheus CounterFunc.
type Metrics struct {
	// LineRecvCount indicates the number of non-empty lines framed from the transport.
	LineRecvCount atomic.Uint64
	// LineSendCount indicates the number of commands written to the transport.
	LineSendCount atomic.Uint64
	// OverflowCount indicates the number of lines discarded for exceeding the buffer.
	OverflowCount atomic.Uint64
	// IgnoredCount indicates the number of lines no decoder claimed.
	IgnoredCount atomic.Uint64
	// HeartbeatSendCount indicates the number of heartbeat acknowledgements sent.
	HeartbeatSendCount atomic.Uint64
	// TransportErrCount indicates the number of transport read or write failures.
	TransportErrCount atomic.Uint64
}

func (m *Metrics) incLineRecvCount() {
	m.LineRecvCount.Add(1)
}

func (m *Metrics) incLineSendCount() {
	m.LineSendCount.Add(1)
}

func (m *Metrics) incOverflowCount() {
	m.OverflowCount.Add(1)
}

func (m *Metrics) incIgnoredCount() {
	m.IgnoredCount.Add(1)
}

func (m *Metrics) incHeartbeatSendCount() {
	m.HeartbeatSendCount.Add(1)
}

func (m *Metrics) incTransportErrCount() {
	m.TransportErrCount.Add(1)
}
