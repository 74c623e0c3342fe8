package withrottle

import "math"

const (
	MinSpeed = 0
	MaxSpeed = 126

	MinFunction = 0
	MaxFunction = 28

	// MaxHeartbeatInterval caps the server's heartbeat interval, in seconds.
	MaxHeartbeatInterval = math.MaxInt32
)

// ChangeFlags reports which observable categories changed during the last Check.
type ChangeFlags struct {
	Clock      bool
	Heartbeat  bool
	Locomotive bool
}

// Any returns true if any category changed.
func (f ChangeFlags) Any() bool {
	return f.Clock || f.Heartbeat || f.Locomotive
}

// sessionState is the mutable record of one connection. It is owned by the
// engine and only touched from Check and the encoder methods.
type sessionState struct {
	selectedAddress string
	speed           int
	direction       Direction
	speedSteps      int

	fastTime     float64
	fastTimeRate float64

	heartbeatInterval int // seconds, 0 = disabled

	protocolVersion string
	deviceName      string
	deviceID        string
}

func newSessionState() sessionState {
	return sessionState{direction: Forward}
}

// setSpeed stores speed, coercing values outside [MinSpeed, MaxSpeed] to 0.
func (s *sessionState) setSpeed(speed int) int {
	if speed < MinSpeed || speed > MaxSpeed {
		speed = 0
	}
	s.speed = speed

	return speed
}

func isValidSpeedSteps(steps int) bool {
	switch steps {
	case SpeedSteps128, SpeedSteps28, SpeedSteps27, SpeedSteps14, SpeedSteps28Motorola:
		return true
	default:
		return false
	}
}
