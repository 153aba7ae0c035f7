package oneping

import (
	"math/rand"
	"net/netip"
	"time"

	"github.com/drgkaleda/go-oneping/packet"
	"github.com/drgkaleda/go-oneping/pinger"
)

const (
	// DefaultTimeout is the probe budget when Config.Timeout is unset.
	DefaultTimeout = 4 * time.Second
	// DefaultTTL is the IPv4 TTL or IPv6 hop limit when Config.TTL is unset.
	DefaultTTL = 64
	// DefaultSeq is the echo sequence number when Config.Seq is unset.
	DefaultSeq = 1

	recvBufferSize = 2048
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

// Config holds the optional probe parameters. The zero value is valid:
// every unset field falls back to its default.
type Config struct {
	// Kind is the socket type. Zero value is pinger.SocketRaw.
	Kind pinger.SocketKind

	// Interface is the egress interface name. Empty means any.
	Interface []byte

	// Bind is the source address. Zero value means unbound.
	Bind netip.Addr

	// Timeout is the whole probe budget, send included. Default 4s.
	Timeout time.Duration

	// TTL (hop limit on IPv6). Default 64.
	TTL int

	// Ident is the echo identifier. Default random, never 0.
	// Linux ping sockets cannot send with identifier 0.
	Ident *uint16

	// Seq is the echo sequence number. Default 1.
	Seq *uint16

	// Payload is sent after the echo header. Default random.
	Payload *packet.Token

	// Open creates the transport. Default pinger.NewSocket.
	Open Opener
}

type params struct {
	kind    pinger.SocketKind
	iface   []byte
	bind    netip.Addr
	timeout time.Duration
	ttl     int
	ident   uint16
	seq     uint16
	payload packet.Token
	opener  Opener
}

// resolve fills in defaults. Ident and payload are drawn fresh on every call.
func (c *Config) resolve() params {
	p := params{
		kind:    c.Kind,
		iface:   c.Interface,
		bind:    c.Bind,
		timeout: c.Timeout,
		ttl:     c.TTL,
		seq:     DefaultSeq,
		opener:  c.Open,
	}

	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}
	if p.ttl <= 0 {
		p.ttl = DefaultTTL
	}
	if p.opener == nil {
		p.opener = openSocket
	}

	if c.Ident != nil {
		p.ident = *c.Ident
	} else {
		p.ident = randomIdent()
	}
	if c.Seq != nil {
		p.seq = *c.Seq
	}
	if c.Payload != nil {
		p.payload = *c.Payload
	} else {
		rand.Read(p.payload[:])
	}

	return p
}

// randomIdent never returns 0: a ping socket bound to port 0 gets a
// kernel chosen identifier.
func randomIdent() uint16 {
	return uint16(rand.Intn(0xffff)) + 1
}
