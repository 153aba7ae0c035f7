package pinger

import (
	"errors"
	"net/netip"
)

const (
	ProtocolICMP     = 1
	ProtocolIPv6ICMP = 58

	// Some retries in case of ENOBUFS
	maxSendTries = 6
)

type ProtocolVersion int

const (
	ProtocolIpv4 = ProtocolVersion(4)
	ProtocolIpv6 = ProtocolVersion(6)
)

// SocketKind selects between raw ICMP sockets (need privileges) and
// datagram "ping sockets" (unprivileged where the OS allows it).
type SocketKind int

const (
	SocketRaw = SocketKind(iota)
	SocketDatagram
)

func (k SocketKind) String() string {
	switch k {
	case SocketRaw:
		return "raw"
	case SocketDatagram:
		return "dgram"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidConn  = errors.New("invalid connection")
	ErrInvalidAddr  = errors.New("invalid address")
	ErrNotSupported = errors.New("not supported on this platform")

	// ErrInvalidIdent is returned when a ping socket would have to bind to
	// port 0 and let the kernel replace the echo identifier.
	ErrInvalidIdent = errors.New("echo identifier 0 not usable on a ping socket")
)

// Socket is an ICMP socket owned by a single probe.
type Socket struct {
	fd    int
	proto ProtocolVersion
	kind  SocketKind

	// source address, applied on bind
	bind  netip.Addr
	bound bool
}
