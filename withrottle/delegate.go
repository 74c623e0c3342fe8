package withrottle

// Direction is the travel direction of a locomotive.
type Direction int

const (
	Reverse Direction = 0
	Forward Direction = 1
)

func (d Direction) String() string {
	if d == Reverse {
		return "Reverse"
	}

	return "Forward"
}

// TrackPower is the track power state reported by the command station.
type TrackPower int

const (
	PowerOff     TrackPower = 0
	PowerOn      TrackPower = 1
	PowerUnknown TrackPower = 2
)

func (p TrackPower) String() string {
	switch p {
	case PowerOff:
		return "Off"
	case PowerOn:
		return "On"
	default:
		return "Unknown"
	}
}

// Valid speed step modes as reported by the server in "s" actions.
const (
	SpeedSteps128        = 1
	SpeedSteps28         = 2
	SpeedSteps27         = 4
	SpeedSteps14         = 8
	SpeedSteps28Motorola = 16
)

// Delegate receives decoded protocol events.
//
// All calls are made synchronously from Protocol.Check and must not block.
// Implementations usually embed BaseDelegate and override what they need.
type Delegate interface {
	ReceivedVersion(version string)

	FastTimeChanged(value float64)
	FastTimeRateChanged(rate float64)

	HeartbeatConfig(seconds int)

	ReceivedFunctionState(function int, on bool)
	ReceivedSpeed(speed int)
	ReceivedDirection(dir Direction)
	ReceivedSpeedSteps(steps int)

	ReceivedWebPort(port int)
	ReceivedTrackPower(state TrackPower)

	AddressAdded(address string, entry string)
	AddressRemoved(address string, detail string)
	AddressStealNeeded(address string, entry string)
}

// BaseDelegate implements Delegate with no-op methods.
type BaseDelegate struct{}

var _ Delegate = BaseDelegate{}

func (BaseDelegate) ReceivedVersion(string)            {}
func (BaseDelegate) FastTimeChanged(float64)           {}
func (BaseDelegate) FastTimeRateChanged(float64)       {}
func (BaseDelegate) HeartbeatConfig(int)               {}
func (BaseDelegate) ReceivedFunctionState(int, bool)   {}
func (BaseDelegate) ReceivedSpeed(int)                 {}
func (BaseDelegate) ReceivedDirection(Direction)       {}
func (BaseDelegate) ReceivedSpeedSteps(int)            {}
func (BaseDelegate) ReceivedWebPort(int)               {}
func (BaseDelegate) ReceivedTrackPower(TrackPower)     {}
func (BaseDelegate) AddressAdded(string, string)       {}
func (BaseDelegate) AddressRemoved(string, string)     {}
func (BaseDelegate) AddressStealNeeded(string, string) {}
