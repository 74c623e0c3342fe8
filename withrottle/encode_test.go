package withrottle

import (
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestEncode_Commands(t *testing.T) {
	require := require.New(t)

	p, tr := newTestProtocol(t, clockwork.NewFakeClock(), WithRosterName(func(address string) string {
		return "Loco " + address
	}))

	require.NoError(p.SetDeviceName("Cab 1"))
	require.NoError(p.SetDeviceID("ab12cd"))
	require.NoError(p.RequireHeartbeat(true))
	require.NoError(p.RequireHeartbeat(false))
	require.NoError(p.AddLocomotive("L4014"))
	require.NoError(p.SetSpeed(126))
	require.NoError(p.SetDirection(Reverse))
	require.NoError(p.SetDirection(Forward))
	require.NoError(p.SetFunction(28, true))
	require.NoError(p.SetFunction(0, false))
	require.NoError(p.EmergencyStop())
	require.NoError(p.StealLocomotive("S3"))
	require.NoError(p.ReleaseLocomotive("S3"))
	require.NoError(p.ReleaseLocomotive("*"))

	require.Equal([]string{
		"NCab 1",
		"HUab12cd",
		"*+",
		"*-",
		"MT+L4014<;>Loco L4014",
		"MTA*<;>V126",
		"MTA*<;>R0",
		"MTA*<;>R1",
		"MTAL4014<;>F128",
		"MTAL4014<;>F00",
		"MTA*<;>X",
		"MTSS3<;>S3",
		"MT-S3<;>",
		"MT-*<;>",
	}, tr.lines)

	require.Equal("Cab 1", p.DeviceName())
	require.Equal("ab12cd", p.DeviceID())
	require.Equal(126, p.Speed())
	require.Equal(Forward, p.Direction())
	require.Empty(p.SelectedAddress())
	require.Equal(uint64(len(tr.lines)), p.Metrics().LineSendCount.Load())
}

func TestEncode_ServerRole(t *testing.T) {
	require := require.New(t)

	p, tr := newTestProtocol(t, clockwork.NewFakeClock(), WithServerRole())

	require.NoError(p.SetSpeed(10))
	require.NoError(p.EmergencyStop())
	require.Equal([]string{"MTA*<;>V10", "", "MTA*<;>X", ""}, tr.lines)
	require.Equal(uint64(2), p.Metrics().LineSendCount.Load())
}

func TestEncode_SpeedOutOfRange(t *testing.T) {
	require := require.New(t)

	p, tr := newTestProtocol(t, clockwork.NewFakeClock())

	require.ErrorIs(p.SetSpeed(200), ErrSpeedOutOfRange)
	require.ErrorIs(p.SetSpeed(-1), ErrSpeedOutOfRange)
	require.Empty(tr.lines)
	require.Zero(p.Speed())

	require.NoError(p.SetSpeed(126))
	require.Equal(126, p.Speed())
}

func TestEncode_FunctionRejected(t *testing.T) {
	require := require.New(t)

	p, tr := newTestProtocol(t, clockwork.NewFakeClock())

	require.ErrorIs(p.SetFunction(5, true), ErrNoLocomotive)

	require.NoError(p.AddLocomotive("S3"))
	tr.lines = nil

	require.ErrorIs(p.SetFunction(29, true), ErrFunctionOutOfRange)
	require.ErrorIs(p.SetFunction(-1, false), ErrFunctionOutOfRange)
	require.Empty(tr.lines)
}

func TestEncode_InvalidAddress(t *testing.T) {
	require := require.New(t)

	p, tr := newTestProtocol(t, clockwork.NewFakeClock())

	for _, addr := range []string{"", "S", "X12", "L12a", "*"} {
		require.ErrorIs(p.AddLocomotive(addr), ErrInvalidAddress, addr)
		require.ErrorIs(p.StealLocomotive(addr), ErrInvalidAddress, addr)
	}
	require.ErrorIs(p.ReleaseLocomotive("L"), ErrInvalidAddress)
	require.Empty(tr.lines)
	require.Empty(p.SelectedAddress())
}

func TestEncode_NotConnected(t *testing.T) {
	require := require.New(t)

	p, _ := newTestProtocol(t, clockwork.NewFakeClock())
	p.Disconnect()

	require.ErrorIs(p.SetSpeed(5), ErrNotConnected)
	require.Zero(p.Speed())
	require.ErrorIs(p.AddLocomotive("S3"), ErrNotConnected)
	require.Empty(p.SelectedAddress())
}

func TestEncode_WriteError(t *testing.T) {
	require := require.New(t)

	writeErr := errors.New("broken pipe")
	p, tr := newTestProtocol(t, clockwork.NewFakeClock())
	tr.writeErr = writeErr

	err := p.SetDirection(Reverse)
	require.ErrorIs(err, writeErr)
	require.Contains(err.Error(), "MTA*<;>R0")
	require.Equal(Forward, p.Direction())
	require.Equal(uint64(1), p.Metrics().TransportErrCount.Load())
	require.Zero(p.Metrics().LineSendCount.Load())
}
