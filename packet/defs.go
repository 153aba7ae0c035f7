package packet

import (
	"errors"
	"fmt"
	"net/netip"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const (
	// HeaderSize is the fixed echo header: type, code, checksum, identifier, sequence.
	HeaderSize = 8
	// TokenSize is the size of the default probe payload.
	TokenSize = 24
	// RequestSize is the wire size of an echo request carrying a Token.
	RequestSize = HeaderSize + TokenSize
)

// Token is the random payload that tells our packets apart from other
// ICMP traffic seen on the same socket.
type Token [TokenSize]byte

var (
	// ErrBufferTooSmall is returned by encoders when the destination cannot hold the message.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrDecode is matched by every decoding failure.
	ErrDecode = errors.New("decode error")

	// ErrTooShort is returned when the buffer cannot hold the header.
	ErrTooShort = fmt.Errorf("%w: message too short", ErrDecode)
	// ErrUnexpectedType is returned for any message other than the expected echo.
	ErrUnexpectedType = fmt.Errorf("%w: unexpected icmp type or code", ErrDecode)
	// ErrChecksum is returned when an ICMPv4 checksum does not verify.
	ErrChecksum = fmt.Errorf("%w: checksum mismatch", ErrDecode)
	// ErrHeaderLength is returned when the IHL points past the end of the packet.
	ErrHeaderLength = fmt.Errorf("%w: ipv4 header length exceeds packet", ErrDecode)
)

// Variant selects the ICMP flavour. Only two exist.
type Variant int

const (
	// V4 is ICMP for IPv4. The encoder owns the checksum.
	V4 = Variant(4)
	// V6 is ICMPv6. The kernel owns the checksum.
	V6 = Variant(6)
)

// VariantOf returns the variant matching the address family of addr.
func VariantOf(addr netip.Addr) Variant {
	if addr.Is4() || addr.Is4In6() {
		return V4
	}
	return V6
}

func (v Variant) String() string {
	switch v {
	case V4:
		return "icmpv4"
	case V6:
		return "icmpv6"
	default:
		return "icmp?"
	}
}

func (v Variant) requestType() byte {
	if v == V6 {
		return byte(ipv6.ICMPTypeEchoRequest)
	}
	return byte(ipv4.ICMPTypeEcho)
}

func (v Variant) replyType() byte {
	if v == V6 {
		return byte(ipv6.ICMPTypeEchoReply)
	}
	return byte(ipv4.ICMPTypeEchoReply)
}

// Anything but V6 is treated as V4, the same as the type selection above.
// ICMPv6 checksums cover a pseudo-header with source and destination
// addresses, which only the kernel knows once it has routed the packet.
func (v Variant) ownsChecksum() bool {
	return v != V6
}
