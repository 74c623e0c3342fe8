package withrottle

import (
	"time"

	"github.com/arloliu/go-withrottle/logger"
)

// Protocol is a WiThrottle protocol engine.
//
// It is poll driven: the owner attaches a transport with Connect and calls
// Check on its own cadence. Check never blocks. Protocol is NOT
// goroutine-safe, except for Metrics and Locomotives which may be read from
// any goroutine.
type Protocol struct {
	cfg    *Config
	logger logger.Logger

	transport Transport
	delegate  Delegate
	framer    *lineFramer

	state sessionState
	flags ChangeFlags

	fastTimeTicker  *pollTicker
	heartbeatTicker *pollTicker

	roster  *roster
	metrics *Metrics
}

// New creates a protocol engine from cfg.
func New(cfg *Config) (*Protocol, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	p := &Protocol{
		cfg:             cfg,
		logger:          cfg.logger.With("component", "withrottle", "role", cfg.role.String()),
		delegate:        BaseDelegate{},
		framer:          newLineFramer(cfg.bufferSize),
		state:           newSessionState(),
		fastTimeTicker:  newPollTicker(cfg.clock),
		heartbeatTicker: newPollTicker(cfg.clock),
		roster:          newRoster(),
		metrics:         &Metrics{},
	}

	return p, nil
}

// SetDelegate sets the receiver of decoded events. A nil d discards events.
func (p *Protocol) SetDelegate(d Delegate) {
	if d == nil {
		d = BaseDelegate{}
	}
	p.delegate = d
}

// Connect attaches t and starts a fresh session.
func (p *Protocol) Connect(t Transport) {
	p.reset()
	p.transport = t
	p.logger.Info("connected")
}

// Disconnect detaches the transport and discards the session state.
// Further calls to Check are no-ops until the next Connect.
func (p *Protocol) Disconnect() {
	if p.transport == nil {
		return
	}
	p.transport = nil
	p.reset()
	p.logger.Info("disconnected")
}

// IsConnected returns true if a transport is attached.
func (p *Protocol) IsConnected() bool {
	return p.transport != nil
}

func (p *Protocol) reset() {
	p.state = newSessionState()
	p.flags = ChangeFlags{}
	p.framer.reset()
	p.fastTimeTicker.restart()
	p.heartbeatTicker.restart()
	p.roster.clear()
}

// Check runs one poll cycle: it advances the fast clock, sends a heartbeat
// when due, then drains every byte the transport has buffered and processes
// each complete line. It returns true if anything changed; Changes reports
// which categories.
func (p *Protocol) Check() bool {
	p.flags = ChangeFlags{}

	if p.transport == nil {
		return false
	}

	changed := p.checkFastTime()
	changed = p.checkHeartbeat() || changed

	// a delegate may disconnect from inside a callback
	for p.transport != nil && p.transport.DataAvailable() {
		b, err := p.transport.ReadByte()
		if err != nil {
			p.metrics.incTransportErrCount()
			p.logger.Error("failed to read from transport", "error", err)

			break
		}

		line, result := p.framer.feed(b)
		switch result {
		case frameLine:
			changed = p.processCommand(string(line)) || changed
		case frameOverflow:
			p.handleOverflow(string(line))
		case frameNone:
		}
	}

	return changed
}

func (p *Protocol) handleOverflow(truncated string) {
	p.metrics.incOverflowCount()
	p.logger.Warn("line too long, discarded", "capacity", p.cfg.bufferSize, "line", truncated)
	p.observe(EventOverflow, truncated)
}

// checkFastTime advances the fast clock by its rate once per real second.
func (p *Protocol) checkFastTime() bool {
	if !p.fastTimeTicker.due(time.Second) {
		return false
	}

	if p.state.fastTimeRate == 0 {
		return false
	}

	p.state.fastTime += p.state.fastTimeRate
	p.flags.Clock = true

	return true
}

// checkHeartbeat sends the heartbeat acknowledgement once the configured
// share of the server's interval has passed since the previous one.
func (p *Protocol) checkHeartbeat() bool {
	if p.state.heartbeatInterval <= 0 {
		return false
	}

	period := time.Duration(float64(p.state.heartbeatInterval) * float64(time.Second) * p.cfg.heartbeatDuty)
	if !p.heartbeatTicker.due(period) {
		return false
	}

	if err := p.sendHeartbeat(); err == nil {
		p.metrics.incHeartbeatSendCount()
	}
	p.flags.Heartbeat = true

	return true
}

func (p *Protocol) observe(kind EventKind, line string) {
	if p.cfg.observer != nil {
		p.cfg.observer(kind, line)
	}
}

// Changes returns the change flags of the last Check.
func (p *Protocol) Changes() ChangeFlags { return p.flags }

// ClockChanged returns true if the fast clock changed during the last Check.
func (p *Protocol) ClockChanged() bool { return p.flags.Clock }

// HeartbeatChanged returns true if the heartbeat was configured or sent during the last Check.
func (p *Protocol) HeartbeatChanged() bool { return p.flags.Heartbeat }

// LocomotiveChanged returns true if locomotive state changed during the last Check.
func (p *Protocol) LocomotiveChanged() bool { return p.flags.Locomotive }

// FastTime returns the fast clock value in seconds.
func (p *Protocol) FastTime() float64 { return p.state.fastTime }

// FastTimeRate returns the fast clock rate; 0 means paused.
func (p *Protocol) FastTimeRate() float64 { return p.state.fastTimeRate }

// FastTimeHours returns the hour of day of the fast clock.
func (p *Protocol) FastTimeHours() int {
	return time.Unix(int64(p.state.fastTime), 0).UTC().Hour()
}

// FastTimeMinutes returns the minute of the hour of the fast clock.
func (p *Protocol) FastTimeMinutes() int {
	return time.Unix(int64(p.state.fastTime), 0).UTC().Minute()
}

// HeartbeatInterval returns the server's heartbeat interval, 0 if disabled.
func (p *Protocol) HeartbeatInterval() time.Duration {
	return time.Duration(p.state.heartbeatInterval) * time.Second
}

// Speed returns the current speed in [MinSpeed, MaxSpeed].
func (p *Protocol) Speed() int { return p.state.speed }

// Direction returns the current direction of travel.
func (p *Protocol) Direction() Direction { return p.state.direction }

// SpeedSteps returns the speed step mode last reported by the server, 0 if unknown.
func (p *Protocol) SpeedSteps() int { return p.state.speedSteps }

// SelectedAddress returns the selected locomotive address, empty if none.
func (p *Protocol) SelectedAddress() string { return p.state.selectedAddress }

// ProtocolVersion returns the version announced by the server with "VN".
func (p *Protocol) ProtocolVersion() string { return p.state.protocolVersion }

// DeviceName returns the name last sent with SetDeviceName.
func (p *Protocol) DeviceName() string { return p.state.deviceName }

// DeviceID returns the hardware ID last sent with SetDeviceID.
func (p *Protocol) DeviceID() string { return p.state.deviceID }

// Locomotives returns the locomotives the server confirmed on this throttle.
func (p *Protocol) Locomotives() []Locomotive { return p.roster.list() }

// Metrics returns the engine's counters.
func (p *Protocol) Metrics() *Metrics { return p.metrics }
