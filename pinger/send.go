//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package pinger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
	"os"

	"golang.org/x/sys/unix"
)

// SendTo transmits one ICMP message to dst.
func (s *Socket) SendTo(b []byte, dst netip.Addr) (int, error) {
	if s.fd < 0 {
		return 0, ErrInvalidConn
	}

	if s.kind == SocketDatagram && !s.bound && (dgramIdentIsPort || s.bind.IsValid()) {
		port, err := identPort(b, dgramIdentIsPort)
		if err != nil {
			return 0, err
		}
		if err := s.bindPort(port); err != nil {
			return 0, err
		}
	}

	sa, err := s.sockaddr(dst, 0)
	if err != nil {
		return 0, err
	}

	// Do not retry infinitely
	for tries := maxSendTries; tries > 0; tries-- {
		err = unix.Sendto(s.fd, b, 0, sa)
		if errors.Is(err, unix.ENOBUFS) || errors.Is(err, unix.EINTR) {
			continue
		}
		break
	}
	if err != nil {
		return 0, wrapErr("sendto", err)
	}
	return len(b), nil
}

// identPort returns the local port a datagram socket binds to before its
// first send. Linux ping sockets put the local port into the echo identifier,
// so binding to the identifier keeps the one we encoded. Port 0 would let the
// kernel pick one and replies would carry an identifier nobody waits for.
func identPort(b []byte, identIsPort bool) (uint16, error) {
	if !identIsPort || len(b) < 6 {
		return 0, nil
	}
	port := binary.BigEndian.Uint16(b[4:6])
	if port == 0 {
		return 0, ErrInvalidIdent
	}
	return port, nil
}

// wrapErr turns an expired SO_SNDTIMEO/SO_RCVTIMEO into os.ErrDeadlineExceeded,
// the same error net.Conn deadlines report.
func wrapErr(op string, err error) error {
	if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
		return fmt.Errorf("%s: %w", op, os.ErrDeadlineExceeded)
	}
	return os.NewSyscallError(op, err)
}
