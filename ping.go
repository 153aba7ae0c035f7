package oneping

import (
	"net/netip"
	"runtime"
	"time"

	"github.com/drgkaleda/go-oneping/packet"
	"github.com/drgkaleda/go-oneping/pinger"
)

// Ping is a chainable wrapper around Probe:
//
//	res, err := oneping.New(addr).Timeout(time.Second).TTL(32).Ping()
type Ping struct {
	addr netip.Addr
	cfg  Config
}

// New starts a ping of addr. Datagram sockets are used by default,
// raw sockets on Windows where ping sockets do not exist.
func New(addr netip.Addr) *Ping {
	kind := pinger.SocketDatagram
	if runtime.GOOS == "windows" {
		kind = pinger.SocketRaw
	}
	return &Ping{addr: addr, cfg: Config{Kind: kind}}
}

// SocketKind selects a raw or datagram socket.
func (p *Ping) SocketKind(kind pinger.SocketKind) *Ping {
	p.cfg.Kind = kind
	return p
}

// Interface binds the probe to the named egress interface.
func (p *Ping) Interface(iface string) *Ping {
	p.cfg.Interface = []byte(iface)
	return p
}

// Bind sets the source address.
func (p *Ping) Bind(addr netip.Addr) *Ping {
	p.cfg.Bind = addr
	return p
}

// Timeout sets the whole probe budget.
func (p *Ping) Timeout(timeout time.Duration) *Ping {
	p.cfg.Timeout = timeout
	return p
}

// TTL sets the IPv4 TTL or IPv6 hop limit.
func (p *Ping) TTL(ttl int) *Ping {
	p.cfg.TTL = ttl
	return p
}

// Ident fixes the echo identifier instead of a random one.
func (p *Ping) Ident(ident uint16) *Ping {
	p.cfg.Ident = &ident
	return p
}

// Seq sets the echo sequence number.
func (p *Ping) Seq(seq uint16) *Ping {
	p.cfg.Seq = &seq
	return p
}

// Payload fixes the echo payload instead of a random one.
func (p *Ping) Payload(payload packet.Token) *Ping {
	p.cfg.Payload = &payload
	return p
}

// Opener replaces the socket factory.
func (p *Ping) Opener(open Opener) *Ping {
	p.cfg.Open = open
	return p
}

// Config returns a copy of the accumulated configuration.
func (p *Ping) Config() Config {
	return p.cfg
}

// Ping runs the probe.
func (p *Ping) Ping() (*Result, error) {
	return Probe(p.addr, p.cfg)
}
