package packet

// Checksum computes the Internet checksum (RFC 1071) of b.
// Over a message that already carries a valid checksum the result is 0.
func Checksum(b []byte) uint16 {
	var sum uint32

	n := len(b) - len(b)%2
	for i := 0; i < n; i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	// odd trailing byte is padded with zero
	if n < len(b) {
		sum += uint32(b[n]) << 8
	}

	for sum > 0xffff {
		sum = sum>>16 + sum&0xffff
	}
	return ^uint16(sum)
}
