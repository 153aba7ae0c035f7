//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package pinger

import (
	"net"
	"net/netip"
	"os"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// NewSocket opens an ICMP socket for the protocol version.
// NOTE: SocketRaw requires super-user privileges (or CAP_NET_RAW).
func NewSocket(proto ProtocolVersion, kind SocketKind) (*Socket, error) {
	domain, protocol := unix.AF_INET, ProtocolICMP
	if proto == ProtocolIpv6 {
		domain, protocol = unix.AF_INET6, ProtocolIPv6ICMP
	}
	typ := unix.SOCK_RAW
	if kind == SocketDatagram {
		typ = unix.SOCK_DGRAM
	}

	// same dance as the net package: no fd leaks into a concurrent fork
	syscall.ForkLock.RLock()
	fd, err := unix.Socket(domain, typ, protocol)
	if err == nil {
		unix.CloseOnExec(fd)
	}
	syscall.ForkLock.RUnlock()
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}

	return &Socket{fd: fd, proto: proto, kind: kind}, nil
}

// Close releases the socket.
func (s *Socket) Close() error {
	if s.fd < 0 {
		return ErrInvalidConn
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return os.NewSyscallError("close", err)
}

// BindToInterface restricts the socket to the named interface.
// An empty name leaves the socket unbound.
func (s *Socket) BindToInterface(iface []byte) error {
	if len(iface) == 0 {
		return nil
	}
	if s.fd < 0 {
		return ErrInvalidConn
	}
	return bindToDevice(s.fd, string(iface))
}

// BindToAddress sets the source address. Datagram sockets are bound on
// the first send, when the echo identifier is known.
func (s *Socket) BindToAddress(addr netip.Addr) error {
	if !addr.IsValid() {
		return ErrInvalidAddr
	}
	if s.fd < 0 {
		return ErrInvalidConn
	}
	s.bind = addr.Unmap()
	if s.kind == SocketDatagram {
		return nil
	}
	return s.bindPort(0)
}

// SetTTL sets the TTL on IPv4 and the unicast hop limit on IPv6.
func (s *Socket) SetTTL(ttl int) error {
	if s.fd < 0 {
		return ErrInvalidConn
	}
	var err error
	if s.proto == ProtocolIpv4 {
		err = unix.SetsockoptInt(s.fd, unix.IPPROTO_IP, unix.IP_TTL, ttl)
	} else {
		err = unix.SetsockoptInt(s.fd, unix.IPPROTO_IPV6, unix.IPV6_UNICAST_HOPS, ttl)
	}
	return os.NewSyscallError("setsockopt", err)
}

// SetSendTimeout bounds a blocking SendTo.
func (s *Socket) SetSendTimeout(d time.Duration) error {
	return s.setTimeout(unix.SO_SNDTIMEO, d)
}

// SetRecvTimeout bounds a blocking Recv.
func (s *Socket) SetRecvTimeout(d time.Duration) error {
	return s.setTimeout(unix.SO_RCVTIMEO, d)
}

// HasIPHeader reports whether received IPv4 datagrams start with the IP header.
func (s *Socket) HasIPHeader() bool {
	if s.proto == ProtocolIpv6 {
		return false
	}
	if s.kind == SocketRaw {
		return true
	}
	return dgramHasIPHeader
}

func (s *Socket) setTimeout(opt int, d time.Duration) error {
	if s.fd < 0 {
		return ErrInvalidConn
	}
	tv := timeval(d)
	return os.NewSyscallError("setsockopt", unix.SetsockoptTimeval(s.fd, unix.SOL_SOCKET, opt, &tv))
}

// timeval converts d for SO_SNDTIMEO/SO_RCVTIMEO. A zero timeval means
// "block forever" there, so nothing rounds down to it.
func timeval(d time.Duration) unix.Timeval {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	if tv.Sec < 0 || (tv.Sec == 0 && tv.Usec <= 0) {
		tv.Sec, tv.Usec = 0, 1
	}
	return tv
}

func (s *Socket) bindPort(port uint16) error {
	addr := s.bind
	if !addr.IsValid() {
		addr = netip.IPv4Unspecified()
		if s.proto == ProtocolIpv6 {
			addr = netip.IPv6Unspecified()
		}
	}
	sa, err := s.sockaddr(addr, int(port))
	if err != nil {
		return err
	}
	if err = unix.Bind(s.fd, sa); err != nil {
		return os.NewSyscallError("bind", err)
	}
	s.bound = true
	return nil
}

func (s *Socket) sockaddr(addr netip.Addr, port int) (unix.Sockaddr, error) {
	addr = addr.Unmap()
	if s.proto == ProtocolIpv4 {
		if !addr.Is4() {
			return nil, ErrInvalidAddr
		}
		return &unix.SockaddrInet4{Port: port, Addr: addr.As4()}, nil
	}

	if !addr.Is6() {
		return nil, ErrInvalidAddr
	}
	sa := &unix.SockaddrInet6{Port: port, Addr: addr.As16()}
	if zone := addr.Zone(); zone != "" {
		if ifi, err := net.InterfaceByName(zone); err == nil {
			sa.ZoneId = uint32(ifi.Index)
		} else if idx, err := strconv.Atoi(zone); err == nil {
			sa.ZoneId = uint32(idx)
		} else {
			return nil, ErrInvalidAddr
		}
	}
	return sa, nil
}
