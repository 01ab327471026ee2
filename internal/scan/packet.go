package scan

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// identifier is the scanner-wide ICMP echo identifier used to reject
// replies that don't belong to this scanner.
const identifier = 0x1337

// minPayloadLen is the minimum Echo payload size: a big-endian 32-bit
// millisecond timestamp.
const minPayloadLen = 4

// buildEcho constructs an ICMP (v4) or ICMPv6 Echo Request carrying the
// current time, in milliseconds, as its first 4 payload bytes.
func buildEcho(v6 bool, sentAt time.Time) ([]byte, error) {
	payload := make([]byte, minPayloadLen)
	binary.BigEndian.PutUint32(payload, uint32(sentAt.UnixMilli()))

	msgType := icmp.Type(ipv4.ICMPTypeEcho)
	if v6 {
		msgType = ipv6.ICMPTypeEchoRequest
	}

	msg := icmp.Message{
		Type: msgType,
		Code: 0,
		Body: &icmp.Echo{
			ID:   identifier,
			Seq:  0,
			Data: payload,
		},
	}

	b, err := msg.Marshal(nil)
	if err != nil {
		return nil, fmt.Errorf("scan: marshal echo request: %w", err)
	}
	return b, nil
}

// echoReply is a parsed, already-validated Echo Reply.
type echoReply struct {
	sentAtMs uint32
}

// parseEchoReply parses b as an Echo Reply for the given protocol family
// and validates identifier and payload length, per spec. It returns
// ok=false (not an error) for any packet that fails validation: these are
// silently discarded by the receive loop, not treated as protocol errors.
func parseEchoReply(v6 bool, b []byte) (echoReply, bool) {
	proto := 1 // ICMPv4
	wantType := icmp.Type(ipv4.ICMPTypeEchoReply)
	if v6 {
		proto = 58 // ICMPv6
		wantType = ipv6.ICMPTypeEchoReply
	}

	msg, err := icmp.ParseMessage(proto, b)
	if err != nil {
		return echoReply{}, false
	}
	if msg.Type != wantType {
		return echoReply{}, false
	}
	echo, ok := msg.Body.(*icmp.Echo)
	if !ok {
		return echoReply{}, false
	}
	if echo.ID != identifier {
		return echoReply{}, false
	}
	if len(echo.Data) < minPayloadLen {
		return echoReply{}, false
	}
	return echoReply{sentAtMs: binary.BigEndian.Uint32(echo.Data[:minPayloadLen])}, true
}

// rtt computes the round-trip time of a reply received at nowMs
// (milliseconds since the Unix epoch, truncated to 32 bits to match the
// embedded send timestamp), saturating at zero on clock-skew underflow.
func rtt(nowMs uint32, r echoReply) time.Duration {
	if nowMs < r.sentAtMs {
		return 0
	}
	return time.Duration(nowMs-r.sentAtMs) * time.Millisecond
}
