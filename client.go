package oneping

import (
	"net/netip"
	"time"

	"github.com/drgkaleda/go-oneping/pinger"
)

// Transport is the socket a probe sends and receives on.
// It is owned by exactly one probe and closed when the probe returns.
// *pinger.Socket implements it.
type Transport interface {
	BindToInterface(iface []byte) error
	BindToAddress(addr netip.Addr) error
	SetTTL(ttl int) error
	SetSendTimeout(d time.Duration) error
	SetRecvTimeout(d time.Duration) error
	SendTo(b []byte, dst netip.Addr) (int, error)
	// Recv must report an expired receive timeout as os.ErrDeadlineExceeded.
	Recv(b []byte) (int, error)
	// HasIPHeader reports whether received IPv4 datagrams carry the IP header.
	HasIPHeader() bool
	Close() error
}

// Opener creates a transport for the given protocol family.
type Opener func(proto pinger.ProtocolVersion, kind pinger.SocketKind) (Transport, error)

func openSocket(proto pinger.ProtocolVersion, kind pinger.SocketKind) (Transport, error) {
	s, err := pinger.NewSocket(proto, kind)
	if err != nil {
		return nil, err
	}
	return s, nil
}
