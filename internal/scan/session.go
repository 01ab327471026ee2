package scan

import (
	"fmt"
	"log/slog"
	"net"
	"time"

	"golang.org/x/net/icmp"

	"v6recon/internal/addr"
)

// ProbeResult is one correlated Echo Reply: the address that answered and
// the measured round-trip time.
type ProbeResult struct {
	Source addr.Address
	RTT    time.Duration
}

// Config tunes a scan Session. The zero value is valid and uses the
// spec's defaults.
type Config struct {
	// RateLimit is the target send rate in packets/sec. 0 selects the
	// default 20ms inter-packet delay.
	RateLimit float64
	// Logger receives per-packet send failures and other non-fatal
	// diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c Config) interPacketDelay() time.Duration {
	if c.RateLimit <= 0 {
		return 20 * time.Millisecond
	}
	return time.Duration(float64(time.Second) / c.RateLimit)
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// rawConn is the subset of *icmp.PacketConn a Session depends on, so
// sessions can be exercised in tests without an actual raw socket.
type rawConn interface {
	WriteTo(b []byte, dst net.Addr) (int, error)
	ReadFrom(b []byte) (int, net.Addr, error)
	SetReadDeadline(t time.Time) error
	Close() error
}

// Session runs one scan: a sender goroutine that emits Echo Requests to
// every host in a CIDR, and a receiver goroutine that correlates replies,
// communicating only through the raw socket and a single results channel.
type Session struct {
	cfg  Config
	conn rawConn
	v6   bool

	results chan ProbeResult

	sent     int
	received int
}

// pollTimeout is the receiver's per-read deadline.
const pollTimeout = 2 * time.Second

// newSession opens the raw socket for the requested family. network is
// "ip4:icmp" or "ip6:ipv6-icmp", matching the teacher's
// icmp.ListenPacket(...) usage.
func newSession(network, listenAddr string, v6 bool, cfg Config) (*Session, error) {
	conn, err := icmp.ListenPacket(network, listenAddr)
	if err != nil {
		return nil, fmt.Errorf("scan: open %s: %w: %w", network, ErrChannel, err)
	}
	return &Session{
		cfg:     cfg,
		conn:    conn,
		v6:      v6,
		results: make(chan ProbeResult, 64),
	}, nil
}

// Run scans every host address in prefix and returns once both the sender
// and receiver have finished. It never returns an error for individual
// probe failures; those are logged.
func (s *Session) Run(prefix addr.CIDR) []ProbeResult {
	senderDone := make(chan struct{})
	go func() {
		defer close(senderDone)
		s.sendLoop(prefix)
	}()
	defer func() { <-senderDone }()

	var out []ProbeResult
	receiverDone := make(chan struct{})
	go func() {
		defer close(receiverDone)
		s.receiveLoop(senderDone)
	}()

	for {
		select {
		case r, ok := <-s.results:
			if !ok {
				return out
			}
			out = append(out, r)
		case <-receiverDone:
			// Drain whatever is already buffered, then stop.
			for {
				select {
				case r, ok := <-s.results:
					if !ok {
						return out
					}
					out = append(out, r)
				default:
					return out
				}
			}
		}
	}
}

// sendLoop iterates the host enumeration of prefix, emitting one Echo
// Request per host with the configured inter-packet delay. It never
// aborts on a per-packet error.
func (s *Session) sendLoop(prefix addr.CIDR) {
	delay := s.cfg.interPacketDelay()
	log := s.cfg.logger()

	for host := range HostsIter(prefix) {
		pkt, err := buildEcho(s.v6, time.Now())
		if err != nil {
			log.Warn("scan: build echo request failed", "target", host.String(), "err", err)
			continue
		}
		dst := &net.IPAddr{IP: net.IP(host.Netip().AsSlice())}
		if _, err := s.conn.WriteTo(pkt, dst); err != nil {
			log.Warn("scan: send failed", "target", host.String(), "err", err)
			continue
		}
		s.sent++
		time.Sleep(delay)
	}

	s.conn.Close()
}

// receiveLoop blocks on the raw socket until either the socket closes or
// a poll times out after the sender has finished, whichever comes first.
func (s *Session) receiveLoop(senderDone <-chan struct{}) {
	defer close(s.results)

	buf := make([]byte, 1500)
	for {
		_ = s.conn.SetReadDeadline(time.Now().Add(pollTimeout))
		n, src, err := s.conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-senderDone:
				return
			default:
			}
			if isTimeout(err) {
				continue
			}
			return
		}

		reply, ok := parseEchoReply(s.v6, buf[:n])
		if !ok {
			continue
		}

		srcAddr, ok := addrFromNet(src)
		if !ok {
			continue
		}

		s.received++
		s.results <- ProbeResult{
			Source: srcAddr,
			RTT:    rtt(uint32(time.Now().UnixMilli()), reply),
		}
	}
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	te, ok := err.(timeouter)
	return ok && te.Timeout()
}

func addrFromNet(a net.Addr) (addr.Address, bool) {
	ipAddr, ok := a.(*net.IPAddr)
	if !ok {
		return addr.Address{}, false
	}
	na, ok := netipFromIP(ipAddr.IP)
	if !ok {
		return addr.Address{}, false
	}
	return addr.FromNetip(na), true
}

// Stats is the session's final sent/received/loss summary.
type Stats struct {
	Sent     int
	Received int
	Loss     float64
}

// Stats returns the sent/received/loss counters accumulated during Run.
// Loss is 0 when no packets were sent.
func (s *Session) Stats() Stats {
	st := Stats{Sent: s.sent, Received: s.received}
	if s.sent > 0 {
		st.Loss = float64(s.sent-s.received) / float64(s.sent)
	}
	return st
}

// ScanICMP4 transmits Echo Requests to every host in an IPv4-mapped or
// plain IPv4 CIDR and returns the correlated results.
func ScanICMP4(prefix addr.CIDR, cfg Config) ([]ProbeResult, *Session, error) {
	s, err := newSession("ip4:icmp", "0.0.0.0", false, cfg)
	if err != nil {
		return nil, nil, err
	}
	return s.Run(prefix), s, nil
}

// ScanICMP6 transmits ICMPv6 Echo Requests to every host in prefix and
// returns the correlated results.
func ScanICMP6(prefix addr.CIDR, cfg Config) ([]ProbeResult, *Session, error) {
	s, err := newSession("ip6:ipv6-icmp", "::", true, cfg)
	if err != nil {
		return nil, nil, err
	}
	return s.Run(prefix), s, nil
}
