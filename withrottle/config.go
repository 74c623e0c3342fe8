package withrottle

import (
	"errors"
	"fmt"

	"github.com/arloliu/go-withrottle/logger"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultBufferSize    = 1024 // line buffer capacity, including the terminator slot
	DefaultHeartbeatDuty = 0.8  // fraction of the peer's interval after which the ack is sent

	MinBufferSize = 64
	MaxBufferSize = 65536
)

// Role selects which side of the WiThrottle link the engine plays.
type Role int

const (
	// ClientRole is a throttle talking to a command-station server. Default.
	ClientRole Role = iota
	// ServerRole terminates every outgoing command with an extra blank line,
	// the way WiThrottle servers do.
	ServerRole
)

func (r Role) String() string {
	switch r {
	case ClientRole:
		return "client"
	case ServerRole:
		return "server"
	default:
		return "unknown"
	}
}

// RosterNameFunc resolves the roster entry name sent with a locomotive
// select command. The default resolver returns the address itself.
type RosterNameFunc func(address string) string

// Config holds the configuration of a protocol engine.
type Config struct {
	role          Role
	bufferSize    int
	heartbeatDuty float64

	// multiThrottle lets locomotive actions address any acquired locomotive,
	// not only the selected one and the "*" wildcard.
	multiThrottle bool

	rosterName RosterNameFunc
	observer   Observer
	clock      clockwork.Clock
	logger     logger.Logger
}

// NewConfig creates a protocol configuration.
//
// opts are functional options applied in order; see With* functions.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		role:          ClientRole,
		bufferSize:    DefaultBufferSize,
		heartbeatDuty: DefaultHeartbeatDuty,
		rosterName:    func(address string) string { return address },
		clock:         clockwork.NewRealClock(),
		logger:        logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Role returns the configured link role.
func (cfg *Config) Role() Role { return cfg.role }

// IsServer returns true if the engine plays the server role.
func (cfg *Config) IsServer() bool { return cfg.role == ServerRole }

// BufferSize returns the line buffer capacity.
func (cfg *Config) BufferSize() int { return cfg.bufferSize }

// HeartbeatDuty returns the fraction of the heartbeat interval after which an ack is sent.
func (cfg *Config) HeartbeatDuty() float64 { return cfg.heartbeatDuty }

// MultiThrottle returns whether locomotive actions may address any acquired locomotive.
func (cfg *Config) MultiThrottle() bool { return cfg.multiThrottle }

// Clock returns the clock driving the periodic timers.
func (cfg *Config) Clock() clockwork.Clock { return cfg.clock }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithClientRole configures the engine as a throttle client. This is the default.
func WithClientRole() Option {
	return optFunc(func(cfg *Config) error {
		cfg.role = ClientRole
		return nil
	})
}

// WithServerRole configures the engine to play the server side of the link.
func WithServerRole() Option {
	return optFunc(func(cfg *Config) error {
		cfg.role = ServerRole
		return nil
	})
}

// WithBufferSize sets the line buffer capacity. Must be in [MinBufferSize, MaxBufferSize].
func WithBufferSize(size int) Option {
	return optFunc(func(cfg *Config) error {
		if size < MinBufferSize || size > MaxBufferSize {
			return fmt.Errorf("withrottle: buffer size %d out of range [%d, %d]", size, MinBufferSize, MaxBufferSize)
		}
		cfg.bufferSize = size

		return nil
	})
}

// WithHeartbeatDuty sets the fraction of the peer's heartbeat interval after
// which the engine sends its acknowledgement. Must be in (0, 1].
func WithHeartbeatDuty(duty float64) Option {
	return optFunc(func(cfg *Config) error {
		if duty <= 0 || duty > 1 {
			return fmt.Errorf("withrottle: heartbeat duty %v out of range (0, 1]", duty)
		}
		cfg.heartbeatDuty = duty

		return nil
	})
}

// WithMultiThrottle enables or disables matching locomotive actions against
// every acquired locomotive. Disabled by default.
func WithMultiThrottle(enabled bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.multiThrottle = enabled
		return nil
	})
}

// WithRosterName sets the resolver for the roster entry sent on locomotive select.
func WithRosterName(fn RosterNameFunc) Option {
	return optFunc(func(cfg *Config) error {
		if fn == nil {
			return errors.New("withrottle: roster name resolver must not be nil")
		}
		cfg.rosterName = fn

		return nil
	})
}

// WithObserver sets the hook invoked on line traffic and protocol anomalies.
func WithObserver(o Observer) Option {
	return optFunc(func(cfg *Config) error {
		cfg.observer = o
		return nil
	})
}

// WithClock sets the clock driving the fast-clock and heartbeat timers.
func WithClock(c clockwork.Clock) Option {
	return optFunc(func(cfg *Config) error {
		if c == nil {
			return errors.New("withrottle: clock must not be nil")
		}
		cfg.clock = c

		return nil
	})
}

// WithLogger sets the logger for the engine.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("withrottle: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
