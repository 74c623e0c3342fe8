// Package withrottle implements the WiThrottle protocol, the newline-delimited
// text protocol used by JMRI and compatible command stations to remote-control
// model railroad locomotives.
//
// # Protocol Overview
//
// Every command is one ASCII line. Servers terminate each command with two
// newlines; the engine absorbs the empty line. Fields inside a command are
// separated by the literal token "<;>". Inbound commands handled:
//
//   - PFT<time>[<;><rate>] — fast clock value and rate
//   - PPA<0|1|2>           — track power off, on, unknown
//   - *<seconds>           — heartbeat interval required by the server
//   - VN<version>          — protocol version
//   - PW<port>             — web server port
//   - MTA<addr><;><action> — locomotive speed, direction, speed steps, function
//   - MT+ / MT- / MTS      — locomotive added, removed, steal needed
//
// Unknown commands are ignored.
//
// # Polling
//
// The engine owns no goroutine. The application attaches a Transport with
// Connect and calls Check regularly; each call advances the fast clock, sends
// the heartbeat acknowledgement when due, and processes every complete line the
// transport has buffered. Decoded events are delivered to a Delegate.
//
//	cfg, _ := withrottle.NewConfig()
//	p, _ := withrottle.New(cfg)
//	p.SetDelegate(myDelegate)
//	p.Connect(withrottle.NewStreamTransport(conn))
//	for range ticker.C {
//		if p.Check() && p.ClockChanged() {
//			render(p.FastTimeHours(), p.FastTimeMinutes())
//		}
//	}
package withrottle
