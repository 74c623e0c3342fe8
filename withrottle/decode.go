package withrottle

import "math"

// decodeFastTime handles "PFT<value>" and "PFT<value><;><rate>".
// The payload is not validated; malformed numbers decode as 0.
func (p *Protocol) decodeFastTime(payload string) bool {
	value, rate, hasRate := payload, "", false
	if head, tail := splitField(payload); len(head) > 0 && len(head) < len(payload) {
		value, rate, hasRate = head, tail, true
	}

	p.state.fastTime = float64(toInt(value))
	p.delegate.FastTimeChanged(p.state.fastTime)

	if hasRate {
		p.state.fastTimeRate = toFloat(rate)
		p.delegate.FastTimeRateChanged(p.state.fastTimeRate)
	}

	p.logger.Debug("fast time set", "value", p.state.fastTime, "rate", p.state.fastTimeRate)
	p.flags.Clock = true

	return true
}

// decodeHeartbeat handles "*<seconds>". A positive interval enables the
// heartbeat; anything else disables it and is not reported as a change.
// Intervals above MaxHeartbeatInterval are capped.
func (p *Protocol) decodeHeartbeat(payload string) bool {
	n := toInt(payload)
	if n <= 0 {
		p.state.heartbeatInterval = 0
		return false
	}
	if n > MaxHeartbeatInterval {
		p.logger.Debug("heartbeat interval capped", "interval", payload)
		n = MaxHeartbeatInterval
	}
	seconds := int(n)

	p.state.heartbeatInterval = seconds
	p.flags.Heartbeat = true
	p.delegate.HeartbeatConfig(seconds)

	return true
}

func (p *Protocol) decodeVersion(payload string) bool {
	p.state.protocolVersion = payload
	p.delegate.ReceivedVersion(payload)

	return true
}

func (p *Protocol) decodeWebPort(payload string) bool {
	port, _ := toIntRange(payload, 0, math.MaxUint16)
	p.delegate.ReceivedWebPort(port)
	return true
}

func (p *Protocol) decodeTrackPower(payload string) bool {
	state := PowerUnknown
	switch payload[0] {
	case '0':
		state = PowerOff
	case '1':
		state = PowerOn
	}
	p.delegate.ReceivedTrackPower(state)

	return true
}

// decodeLocomotiveAction handles "MTA<addr><;><action>". The address must be
// the selected locomotive or the "*" wildcard; in multi-throttle mode any
// acquired locomotive also matches. Other addresses are ignored.
func (p *Protocol) decodeLocomotiveAction(payload string) bool {
	action, ok := p.matchActionAddress(payload)
	if !ok {
		return false
	}

	if action == "" {
		p.logger.Debug("empty locomotive action", "payload", payload)
		return false
	}

	switch action[0] {
	case 'F':
		return p.decodeFunctionState(action)
	case 'V':
		return p.decodeSpeed(action)
	case 's':
		return p.decodeSpeedSteps(action)
	case 'R':
		return p.decodeDirection(action)
	default:
		p.logger.Debug("unrecognized locomotive action", "action", action)
		p.observe(EventUnknownAction, action)

		return false
	}
}

func (p *Protocol) matchActionAddress(payload string) (string, bool) {
	address, action := splitField(payload)
	if len(address) == len(payload) {
		// no separator
		return "", false
	}

	switch {
	case address == Wildcard:
		return action, true
	case p.state.selectedAddress != "" && address == p.state.selectedAddress:
		return action, true
	case p.cfg.multiThrottle && p.roster.has(address):
		return action, true
	default:
		return "", false
	}
}

// decodeFunctionState handles "F<0|1><index>", e.g. "F112" turns function 12 on.
func (p *Protocol) decodeFunctionState(data string) bool {
	if len(data) < 3 {
		return false
	}

	on := data[1] == '1'
	indexStr := data[2:]
	index, ok := toIntRange(indexStr, 0, math.MaxInt32)

	// toInt yields 0 on garbage, so 0 is only trusted when it was sent literally
	if !ok || (index == 0 && indexStr != "0") {
		p.logger.Debug("invalid function index", "index", indexStr)
		return false
	}

	p.flags.Locomotive = true
	p.delegate.ReceivedFunctionState(index, on)

	return true
}

// decodeSpeed handles "V<speed>"; speeds outside [MinSpeed, MaxSpeed] become 0.
func (p *Protocol) decodeSpeed(data string) bool {
	if len(data) < 2 {
		return false
	}

	// out-of-range speeds come back as 0, which setSpeed stores
	raw, _ := toIntRange(data[1:], MinSpeed, MaxSpeed)
	speed := p.state.setSpeed(raw)
	p.flags.Locomotive = true
	p.delegate.ReceivedSpeed(speed)

	return true
}

// decodeSpeedSteps handles "s<mode>"; unknown modes are dropped.
func (p *Protocol) decodeSpeedSteps(data string) bool {
	if len(data) < 2 {
		return false
	}

	steps, ok := toIntRange(data[1:], SpeedSteps128, SpeedSteps28Motorola)
	if !ok || !isValidSpeedSteps(steps) {
		p.logger.Debug("invalid speed step mode", "steps", data[1:])
		return false
	}

	p.state.speedSteps = steps
	p.flags.Locomotive = true
	p.delegate.ReceivedSpeedSteps(steps)

	return true
}

// decodeDirection handles "R<0|1>"; anything but '0' means Forward.
func (p *Protocol) decodeDirection(data string) bool {
	if len(data) < 2 {
		return false
	}

	dir := Forward
	if data[1] == '0' {
		dir = Reverse
	}

	p.state.direction = dir
	p.flags.Locomotive = true
	p.delegate.ReceivedDirection(dir)

	return true
}

// decodeAddressAdded handles "MT+<addr><;><roster entry>".
func (p *Protocol) decodeAddressAdded(payload string) bool {
	address, entry := splitField(payload)

	p.roster.add(address, entry)
	p.flags.Locomotive = true
	p.delegate.AddressAdded(address, entry)

	return true
}

// decodeAddressRemoved handles "MT-<addr><;><detail>".
func (p *Protocol) decodeAddressRemoved(payload string) bool {
	address, detail := splitField(payload)

	p.roster.remove(address)
	if address == Wildcard || address == p.state.selectedAddress {
		p.state.selectedAddress = ""
	}
	p.flags.Locomotive = true
	p.delegate.AddressRemoved(address, detail)

	return true
}

// decodeStealNeeded handles "MTS<addr><;><entry>", sent when the address is
// held by another throttle.
func (p *Protocol) decodeStealNeeded(payload string) bool {
	address, entry := splitField(payload)

	p.flags.Locomotive = true
	p.delegate.AddressStealNeeded(address, entry)

	return true
}
