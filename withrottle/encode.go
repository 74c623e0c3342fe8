package withrottle

import (
	"fmt"
	"strconv"
)

// sendCommand writes cmd followed by the line delimiter. In server role an
// additional empty line terminates the command.
func (p *Protocol) sendCommand(cmd string) error {
	if p.transport == nil {
		return ErrNotConnected
	}

	if err := p.transport.WriteLine([]byte(cmd)); err != nil {
		return p.sendFailed(cmd, err)
	}

	if p.cfg.IsServer() {
		if err := p.transport.WriteLine(nil); err != nil {
			return p.sendFailed(cmd, err)
		}
	}

	p.metrics.incLineSendCount()
	p.logger.Debug("==>", "line", cmd)
	p.observe(EventLineSent, cmd)

	return nil
}

func (p *Protocol) sendFailed(cmd string, err error) error {
	p.metrics.incTransportErrCount()
	p.logger.Error("failed to send command", "line", cmd, "error", err)

	return fmt.Errorf("withrottle: send %q: %w", cmd, err)
}

// SetDeviceName stores the device name and announces it to the server with "N<name>".
func (p *Protocol) SetDeviceName(name string) error {
	p.state.deviceName = name
	return p.sendCommand("N" + name)
}

// SetDeviceID stores the unique device ID and announces it with "HU<id>".
func (p *Protocol) SetDeviceID(id string) error {
	p.state.deviceID = id
	return p.sendCommand("HU" + id)
}

// RequireHeartbeat asks the server to enable ("*+") or disable ("*-") its
// heartbeat monitoring of this throttle.
func (p *Protocol) RequireHeartbeat(needed bool) error {
	if needed {
		return p.sendCommand("*+")
	}

	return p.sendCommand("*-")
}

func (p *Protocol) sendHeartbeat() error {
	return p.sendCommand("*")
}

// AddLocomotive acquires address and makes it the selected locomotive.
func (p *Protocol) AddLocomotive(address string) error {
	if !isValidAddress(address) {
		return fmt.Errorf("withrottle: add locomotive %q: %w", address, ErrInvalidAddress)
	}

	cmd := "MT+" + address + fieldSeparator + p.cfg.rosterName(address)
	if err := p.sendCommand(cmd); err != nil {
		return err
	}
	p.state.selectedAddress = address

	return nil
}

// StealLocomotive force-acquires an address held by another throttle,
// typically in answer to AddressStealNeeded.
func (p *Protocol) StealLocomotive(address string) error {
	if !isValidAddress(address) {
		return fmt.Errorf("withrottle: steal locomotive %q: %w", address, ErrInvalidAddress)
	}

	if err := p.sendCommand("MTS" + address + fieldSeparator + address); err != nil {
		return err
	}
	p.state.selectedAddress = address

	return nil
}

// ReleaseLocomotive releases address, or every locomotive on the throttle
// when address is "*".
func (p *Protocol) ReleaseLocomotive(address string) error {
	if address != Wildcard && !isValidAddress(address) {
		return fmt.Errorf("withrottle: release locomotive %q: %w", address, ErrInvalidAddress)
	}

	if err := p.sendCommand("MT-" + address + fieldSeparator); err != nil {
		return err
	}
	if address == Wildcard || address == p.state.selectedAddress {
		p.state.selectedAddress = ""
	}

	return nil
}

// SetSpeed sets the speed of the throttle's locomotives. Speeds outside
// [MinSpeed, MaxSpeed] are rejected and nothing is sent.
func (p *Protocol) SetSpeed(speed int) error {
	if speed < MinSpeed || speed > MaxSpeed {
		return fmt.Errorf("withrottle: set speed %d: %w", speed, ErrSpeedOutOfRange)
	}

	if err := p.sendCommand(actionCommand(Wildcard, "V"+strconv.Itoa(speed))); err != nil {
		return err
	}
	p.state.speed = speed

	return nil
}

// SetDirection sets the direction of the throttle's locomotives.
func (p *Protocol) SetDirection(dir Direction) error {
	action := "R1"
	if dir == Reverse {
		action = "R0"
	}

	if err := p.sendCommand(actionCommand(Wildcard, action)); err != nil {
		return err
	}
	p.state.direction = dir

	return nil
}

// SetFunction presses or releases function fn of the selected locomotive.
// Functions outside [MinFunction, MaxFunction] are rejected and nothing is sent.
func (p *Protocol) SetFunction(fn int, pressed bool) error {
	if fn < MinFunction || fn > MaxFunction {
		return fmt.Errorf("withrottle: set function %d: %w", fn, ErrFunctionOutOfRange)
	}
	if p.state.selectedAddress == "" {
		return fmt.Errorf("withrottle: set function %d: %w", fn, ErrNoLocomotive)
	}

	action := "F0"
	if pressed {
		action = "F1"
	}

	return p.sendCommand(actionCommand(p.state.selectedAddress, action+strconv.Itoa(fn)))
}

// EmergencyStop stops every locomotive on the throttle immediately.
func (p *Protocol) EmergencyStop() error {
	return p.sendCommand(actionCommand(Wildcard, "X"))
}

func actionCommand(address string, action string) string {
	return "MTA" + address + fieldSeparator + action
}

// isValidAddress reports whether address is S<digits> or L<digits>.
func isValidAddress(address string) bool {
	if len(address) < 2 || (address[0] != 'S' && address[0] != 'L') {
		return false
	}
	for i := 1; i < len(address); i++ {
		if address[i] < '0' || address[i] > '9' {
			return false
		}
	}

	return true
}
