//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package pinger

import (
	"net/netip"
	"time"
)

func NewSocket(proto ProtocolVersion, kind SocketKind) (*Socket, error) {
	return nil, ErrNotSupported
}

func (s *Socket) Close() error { return ErrNotSupported }
func (s *Socket) BindToInterface(iface []byte) error { return ErrNotSupported }
func (s *Socket) BindToAddress(addr netip.Addr) error { return ErrNotSupported }
func (s *Socket) SetTTL(ttl int) error { return ErrNotSupported }
func (s *Socket) SetSendTimeout(d time.Duration) error { return ErrNotSupported }
func (s *Socket) SetRecvTimeout(d time.Duration) error { return ErrNotSupported }
func (s *Socket) SendTo(b []byte, dst netip.Addr) (int, error) { return 0, ErrNotSupported }
func (s *Socket) Recv(b []byte) (int, error) { return 0, ErrNotSupported }
func (s *Socket) HasIPHeader() bool { return false }
