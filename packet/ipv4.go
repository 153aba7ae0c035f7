package packet

// IPv4Packet is a read-only view of a received IPv4 datagram.
// Data borrows the buffer passed to DecodeIPv4Packet.
type IPv4Packet struct {
	HeaderLen int
	Data      []byte
}

// DecodeIPv4Packet locates the payload of the IPv4 datagram in b using the
// header length from the low nibble of the first byte.
func DecodeIPv4Packet(b []byte) (*IPv4Packet, error) {
	if len(b) < 1 {
		return nil, ErrTooShort
	}
	hlen := int(b[0]&0x0f) << 2
	if hlen > len(b) {
		return nil, ErrHeaderLength
	}
	return &IPv4Packet{HeaderLen: hlen, Data: b[hlen:]}, nil
}
