package withrottle

import (
	"testing"

	"github.com/arloliu/go-withrottle/logger"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memTransport is an in-memory Transport. Bytes pushed with push are read
// back by the engine; written lines are recorded without their delimiter.
type memTransport struct {
	in       []byte
	lines    []string
	writeErr error
}

var _ Transport = (*memTransport)(nil)

func (m *memTransport) push(s string) {
	m.in = append(m.in, s...)
}

func (m *memTransport) DataAvailable() bool {
	return len(m.in) > 0
}

func (m *memTransport) ReadByte() (byte, error) {
	if len(m.in) == 0 {
		return 0, ErrNoData
	}
	b := m.in[0]
	m.in = m.in[1:]

	return b, nil
}

func (m *memTransport) WriteLine(line []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.lines = append(m.lines, string(line))

	return nil
}

// newTestProtocol creates a connected engine with a silent logger driven by clock.
func newTestProtocol(t *testing.T, clock clockwork.Clock, opts ...Option) (*Protocol, *memTransport) {
	t.Helper()

	opts = append([]Option{WithLogger(logger.NewNop()), WithClock(clock)}, opts...)
	cfg, err := NewConfig(opts...)
	require.NoError(t, err)

	p, err := New(cfg)
	require.NoError(t, err)

	tr := &memTransport{}
	p.Connect(tr)

	return p, tr
}

// mockDelegate is a testify mock of Delegate. Calls without a matching
// expectation fail the test.
type mockDelegate struct {
	mock.Mock
}

var _ Delegate = (*mockDelegate)(nil)

func (m *mockDelegate) ReceivedVersion(version string) { m.Called(version) }

func (m *mockDelegate) FastTimeChanged(value float64) { m.Called(value) }

func (m *mockDelegate) FastTimeRateChanged(rate float64) { m.Called(rate) }

func (m *mockDelegate) HeartbeatConfig(seconds int) { m.Called(seconds) }

func (m *mockDelegate) ReceivedFunctionState(function int, on bool) { m.Called(function, on) }

func (m *mockDelegate) ReceivedSpeed(speed int) { m.Called(speed) }

func (m *mockDelegate) ReceivedDirection(dir Direction) { m.Called(dir) }

func (m *mockDelegate) ReceivedSpeedSteps(steps int) { m.Called(steps) }

func (m *mockDelegate) ReceivedWebPort(port int) { m.Called(port) }

func (m *mockDelegate) ReceivedTrackPower(state TrackPower) { m.Called(state) }

func (m *mockDelegate) AddressAdded(address string, entry string) { m.Called(address, entry) }

func (m *mockDelegate) AddressRemoved(address string, detail string) { m.Called(address, detail) }

func (m *mockDelegate) AddressStealNeeded(address string, entry string) { m.Called(address, entry) }

// newEngineMockLogger returns a mock logger that accepts the child logger a
// Protocol derives in New and the "connected" record written by Connect.
func newEngineMockLogger(role Role) *logger.MockLogger {
	ml := logger.NewMockLogger()
	ml.ExpectWith("component", "withrottle", "role", role.String()).Once()
	ml.On("Info", "connected", mock.Anything).Once()

	return ml
}
