package withrottle

import (
	"testing"

	"github.com/arloliu/go-withrottle/logger"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ClientRole, cfg.Role())
	assert.False(t, cfg.IsServer())
	assert.Equal(t, DefaultBufferSize, cfg.BufferSize())
	assert.Equal(t, DefaultHeartbeatDuty, cfg.HeartbeatDuty())
	assert.False(t, cfg.MultiThrottle())
	assert.NotNil(t, cfg.Clock())
	assert.NotNil(t, cfg.GetLogger())
	assert.Equal(t, "L3", cfg.rosterName("L3"))
}

func TestNewConfig_WithOptions(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := logger.NewNop()

	cfg, err := NewConfig(
		WithServerRole(),
		WithBufferSize(256),
		WithHeartbeatDuty(0.5),
		WithMultiThrottle(true),
		WithClock(clock),
		WithLogger(l),
	)
	require.NoError(t, err)

	assert.Equal(t, ServerRole, cfg.Role())
	assert.True(t, cfg.IsServer())
	assert.Equal(t, 256, cfg.BufferSize())
	assert.Equal(t, 0.5, cfg.HeartbeatDuty())
	assert.True(t, cfg.MultiThrottle())
	assert.Equal(t, clock, cfg.Clock())
	assert.Equal(t, l, cfg.GetLogger())

	cfg, err = NewConfig(WithServerRole(), WithClientRole())
	require.NoError(t, err)
	assert.Equal(t, ClientRole, cfg.Role())
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		msg  string
	}{
		{"buffer too small", WithBufferSize(MinBufferSize - 1), "buffer size"},
		{"buffer too large", WithBufferSize(MaxBufferSize + 1), "buffer size"},
		{"zero duty", WithHeartbeatDuty(0), "heartbeat duty"},
		{"duty above one", WithHeartbeatDuty(1.2), "heartbeat duty"},
		{"nil clock", WithClock(nil), "clock"},
		{"nil logger", WithLogger(nil), "logger"},
		{"nil roster name", WithRosterName(nil), "roster name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opt)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrConfigNil)
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "client", ClientRole.String())
	assert.Equal(t, "server", ServerRole.String())
	assert.Equal(t, "unknown", Role(9).String())
}
