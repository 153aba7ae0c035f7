// Package oneping sends a single ICMP echo request and waits for the
// matching reply.
//
// A probe is synchronous: it owns its socket, blocks the calling goroutine
// for at most Config.Timeout and returns. Probing many hosts at once is up
// to the caller, one goroutine per target; probes share nothing.
//
// Replies are matched by echo identifier only. Every probe draws a random
// identifier and payload unless told otherwise, so unrelated ICMP traffic
// seen on a raw socket is skipped.
package oneping

import (
	"net/netip"
	"time"

	"github.com/drgkaleda/go-oneping/packet"
	"github.com/drgkaleda/go-oneping/pinger"
	log "github.com/sirupsen/logrus"
)

// timeNow is swapped out in tests
var timeNow = time.Now

// Result describes a matched echo reply.
type Result struct {
	Addr  netip.Addr
	Ident uint16
	Seq   uint16
	// RTT is the time between sending the request and receiving the reply.
	RTT time.Duration
	// Skipped counts datagrams discarded before the reply arrived.
	Skipped int
}

type probe struct {
	params

	addr    netip.Addr
	variant packet.Variant
	request packet.EchoRequest
	conn    Transport

	start   time.Time
	sent    time.Time
	skipped int

	log *log.Entry
}

// Probe pings addr once. It returns a Result when a reply with the request's
// identifier arrives within cfg.Timeout, otherwise a *ProbeError.
func Probe(addr netip.Addr, cfg Config) (*Result, error) {
	p := &probe{
		start:  timeNow(),
		params: cfg.resolve(),
		addr:   addr.Unmap(),
	}
	if !p.addr.IsValid() {
		return nil, &ProbeError{Kind: ErrTransport, Op: "probe", Err: pinger.ErrInvalidAddr}
	}
	p.variant = packet.VariantOf(p.addr)
	p.log = log.WithFields(log.Fields{
		"addr":  p.addr,
		"ident": p.ident,
		"seq":   p.seq,
		"kind":  p.kind,
	})

	wb, err := p.prepare()
	if err != nil {
		return nil, err
	}

	if err = p.open(); err != nil {
		return nil, err
	}
	defer p.conn.Close()

	if err = p.send(wb); err != nil {
		p.log.WithError(err).Debug("send failed")
		return nil, err
	}

	res, err := p.wait()
	if err != nil {
		p.log.WithError(err).WithField("skipped", p.skipped).Debug("no reply")
		return nil, err
	}
	p.log.WithFields(log.Fields{"rtt": res.RTT, "skipped": res.Skipped}).Debug("echo reply")
	return res, nil
}

// PingRaw probes addr over a raw ICMP socket.
func PingRaw(addr netip.Addr, cfg Config) (*Result, error) {
	cfg.Kind = pinger.SocketRaw
	return Probe(addr, cfg)
}

// PingDatagram probes addr over an unprivileged datagram ICMP socket.
func PingDatagram(addr netip.Addr, cfg Config) (*Result, error) {
	cfg.Kind = pinger.SocketDatagram
	return Probe(addr, cfg)
}

// elapsed is measured from the start of the probe, socket setup included.
func (p *probe) elapsed() time.Duration {
	return timeNow().Sub(p.start)
}

func (p *probe) timedOut(op string) error {
	return &ProbeError{Kind: ErrTimedOut, Op: op}
}

func protocolOf(v packet.Variant) pinger.ProtocolVersion {
	if v == packet.V6 {
		return pinger.ProtocolIpv6
	}
	return pinger.ProtocolIpv4
}
