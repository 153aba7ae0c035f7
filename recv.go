package oneping

import (
	"github.com/drgkaleda/go-oneping/packet"
)

// wait receives until a reply carrying our identifier arrives or the
// timeout is spent. The receive timeout is recomputed from the start of
// the probe on every iteration, so a stream of foreign packets cannot
// stretch the budget.
func (p *probe) wait() (*Result, error) {
	rb := make([]byte, recvBufferSize)

	for {
		remaining := p.timeout - p.elapsed()
		// a zero socket timeout would block forever
		if remaining <= 0 {
			return nil, p.timedOut("recv")
		}
		if err := p.conn.SetRecvTimeout(remaining); err != nil {
			return nil, transportError("set recv timeout", err)
		}

		n, err := p.conn.Recv(rb)
		switch {
		case err == nil:
			reply, err := p.parse(rb[:n])
			if err != nil {
				return nil, err
			}
			if reply != nil && reply.Ident == p.ident {
				return &Result{
					Addr:    p.addr,
					Ident:   reply.Ident,
					Seq:     reply.Seq,
					RTT:     timeNow().Sub(p.sent),
					Skipped: p.skipped,
				}, nil
			}
			p.skipped++
		case isTimeout(err):
			// The timeout may fire a little early, let the clock decide.
		default:
			return nil, transportError("recv", err)
		}

		if p.elapsed() >= p.timeout {
			return nil, p.timedOut("recv")
		}
	}
}

// parse returns the echo reply in b, or nil if b is some other ICMP message.
// Only a corrupt outer IPv4 header is an error.
func (p *probe) parse(b []byte) (*packet.EchoReply, error) {
	if p.variant == packet.V4 && p.conn.HasIPHeader() {
		ip, err := packet.DecodeIPv4Packet(b)
		if err != nil {
			return nil, &ProbeError{Kind: ErrDecode, Op: "decode ipv4", Err: err}
		}
		b = ip.Data
	}

	reply, err := packet.DecodeEchoReply(p.variant, b)
	if err != nil {
		p.log.WithError(err).Trace("skipping datagram")
		return nil, nil
	}
	if reply.Ident != p.ident {
		p.log.WithField("got_ident", reply.Ident).Trace("skipping foreign echo reply")
	}
	return reply, nil
}
