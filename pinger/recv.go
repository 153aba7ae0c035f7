//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package pinger

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Recv blocks for one datagram, at most for the receive timeout.
// An expired timeout is reported as os.ErrDeadlineExceeded.
func (s *Socket) Recv(b []byte) (int, error) {
	if s.fd < 0 {
		return 0, ErrInvalidConn
	}

	for {
		n, _, err := unix.Recvfrom(s.fd, b, 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, wrapErr("recvfrom", err)
		}
		return n, nil
	}
}
