package withrottle

import (
	"math"
	"strconv"
	"strings"
)

// Wildcard addresses every locomotive on the throttle.
const Wildcard = "*"

const fieldSeparator = "<;>"

type commandDecoder func(p *Protocol, payload string) bool

// commandPattern routes lines starting with prefix, and at least minLen
// bytes long, to decode with the prefix stripped.
type commandPattern struct {
	prefix string
	minLen int
	decode commandDecoder
}

// commandTable is matched in order, the first match wins.
var commandTable = []commandPattern{
	{prefix: "PFT", minLen: 4, decode: (*Protocol).decodeFastTime},
	{prefix: "PPA", minLen: 4, decode: (*Protocol).decodeTrackPower},
	{prefix: "*", minLen: 2, decode: (*Protocol).decodeHeartbeat},
	{prefix: "VN", minLen: 3, decode: (*Protocol).decodeVersion},
	{prefix: "PW", minLen: 3, decode: (*Protocol).decodeWebPort},
	{prefix: "MTA", minLen: 9, decode: (*Protocol).decodeLocomotiveAction},
	{prefix: "MT+", minLen: 4, decode: (*Protocol).decodeAddressAdded},
	{prefix: "MT-", minLen: 4, decode: (*Protocol).decodeAddressRemoved},
	{prefix: "MTS", minLen: 4, decode: (*Protocol).decodeStealNeeded},
}

// processCommand dispatches one framed line and reports whether it changed
// any observable state. Lines matching no pattern are ignored.
func (p *Protocol) processCommand(line string) bool {
	p.metrics.incLineRecvCount()
	p.logger.Debug("<==", "line", line)
	p.observe(EventLineReceived, line)

	for _, pattern := range commandTable {
		if len(line) >= pattern.minLen && strings.HasPrefix(line, pattern.prefix) {
			return pattern.decode(p, line[len(pattern.prefix):])
		}
	}

	p.metrics.incIgnoredCount()
	p.observe(EventUnknownCommand, line)

	return false
}

// splitField splits s at the first field separator. When s has no separator,
// head is s and tail is empty.
func splitField(s string) (head string, tail string) {
	head, tail, _ = strings.Cut(s, fieldSeparator)
	return head, tail
}

// toInt parses the leading decimal integer of s, after optional blanks and
// sign. Anything unparsable, including overflow, yields 0.
func toInt(s string) int64 {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	var n int64
	for _, c := range s[digitsStart:end] {
		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0
		}
		n = n*10 + d
	}
	if s[0] == '-' {
		return -n
	}

	return n
}

// toIntRange parses s like toInt and reports whether the value lies in
// [lo, hi]. Out-of-range values yield 0 and false, never a truncated int.
func toIntRange(s string, lo, hi int64) (int, bool) {
	n := toInt(s)
	if n < lo || n > hi {
		return 0, false
	}

	return int(n), true
}

// toFloat parses the leading decimal number of s, e.g. "2.5<junk>" gives 2.5.
// Anything unparsable yields 0.
func toFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	mantissa := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}

	return v
}
