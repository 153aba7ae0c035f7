package packet

import (
	"encoding/binary"
	"fmt"
)

// EchoRequest is an outgoing ICMP echo request.
type EchoRequest struct {
	Ident   uint16
	Seq     uint16
	Payload []byte
}

// EchoReply is an ICMP echo reply. When decoded, Payload points into
// the buffer it was decoded from.
type EchoReply struct {
	Ident   uint16
	Seq     uint16
	Payload []byte
}

// Len returns the encoded size of the request.
func (r *EchoRequest) Len() int {
	return HeaderSize + len(r.Payload)
}

// Encode writes the request into b. For V4 the checksum is filled in,
// for V6 the checksum field is left zero for the kernel.
func (r *EchoRequest) Encode(v Variant, b []byte) error {
	return encodeEcho(v, v.requestType(), r.Ident, r.Seq, r.Payload, b)
}

// Len returns the encoded size of the reply.
func (r *EchoReply) Len() int {
	return HeaderSize + len(r.Payload)
}

// Encode writes the reply into b, same layout as EchoRequest.Encode.
func (r *EchoReply) Encode(v Variant, b []byte) error {
	return encodeEcho(v, v.replyType(), r.Ident, r.Seq, r.Payload, b)
}

// DecodeEchoReply parses b as an echo reply of variant v. Anything else
// seen on a raw socket (our own requests, unreachables, redirects) fails.
func DecodeEchoReply(v Variant, b []byte) (*EchoReply, error) {
	ident, seq, payload, err := decodeEcho(v, v.replyType(), b)
	if err != nil {
		return nil, err
	}
	return &EchoReply{Ident: ident, Seq: seq, Payload: payload}, nil
}

// DecodeEchoRequest parses b as an echo request of variant v.
func DecodeEchoRequest(v Variant, b []byte) (*EchoRequest, error) {
	ident, seq, payload, err := decodeEcho(v, v.requestType(), b)
	if err != nil {
		return nil, err
	}
	return &EchoRequest{Ident: ident, Seq: seq, Payload: payload}, nil
}

func encodeEcho(v Variant, typ byte, ident, seq uint16, payload, b []byte) error {
	size := HeaderSize + len(payload)
	if len(b) < size {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, size, len(b))
	}
	b = b[:size]

	b[0] = typ
	b[1] = 0
	b[2], b[3] = 0, 0
	binary.BigEndian.PutUint16(b[4:6], ident)
	binary.BigEndian.PutUint16(b[6:8], seq)
	copy(b[HeaderSize:], payload)

	// Every other field must be final before this point.
	if v.ownsChecksum() {
		binary.BigEndian.PutUint16(b[2:4], Checksum(b))
	}
	return nil
}

func decodeEcho(v Variant, typ byte, b []byte) (ident, seq uint16, payload []byte, err error) {
	if len(b) < HeaderSize {
		return 0, 0, nil, ErrTooShort
	}
	if v.ownsChecksum() && Checksum(b) != 0 {
		return 0, 0, nil, ErrChecksum
	}
	if b[0] != typ || b[1] != 0 {
		return 0, 0, nil, ErrUnexpectedType
	}

	ident = binary.BigEndian.Uint16(b[4:6])
	seq = binary.BigEndian.Uint16(b[6:8])
	return ident, seq, b[HeaderSize:], nil
}
