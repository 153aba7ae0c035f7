package oneping

import (
	"github.com/drgkaleda/go-oneping/packet"
)

// prepare encodes the request into an exactly sized buffer.
func (p *probe) prepare() ([]byte, error) {
	p.request = packet.EchoRequest{
		Ident:   p.ident,
		Seq:     p.seq,
		Payload: p.payload[:],
	}

	wb := make([]byte, packet.RequestSize)
	if err := p.request.Encode(p.variant, wb); err != nil {
		// buffer is sized from the same constants, cannot happen
		return nil, &ProbeError{Kind: ErrInternal, Op: "encode", Err: err}
	}
	return wb, nil
}

// open acquires and configures the transport.
func (p *probe) open() error {
	conn, err := p.opener(protocolOf(p.variant), p.kind)
	if err != nil {
		return transportError("socket", err)
	}

	if err = conn.BindToInterface(p.iface); err != nil {
		conn.Close()
		return transportError("bind interface", err)
	}
	if p.bind.IsValid() {
		if err = conn.BindToAddress(p.bind); err != nil {
			conn.Close()
			return transportError("bind", err)
		}
	}
	if err = conn.SetTTL(p.ttl); err != nil {
		conn.Close()
		return transportError("set ttl", err)
	}

	p.conn = conn
	return nil
}

// send transmits the request once. There are no retries.
func (p *probe) send(wb []byte) error {
	if err := p.conn.SetSendTimeout(p.timeout); err != nil {
		return transportError("set send timeout", err)
	}
	if _, err := p.conn.SendTo(wb, p.addr); err != nil {
		return transportError("sendto", err)
	}
	p.sent = timeNow()
	p.log.Debug("echo request sent")
	return nil
}
