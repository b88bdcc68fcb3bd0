package middleware

import (
	"net"

	"webshim/fetch"
)

type ForwardedFor struct {
	addr net.Addr
}

func NewForwardedFor(addr net.Addr) *ForwardedFor {
	return &ForwardedFor{addr: addr}
}

func (ff *ForwardedFor) HandleRequest(req *fetch.Request) error {
	host, _, err := net.SplitHostPort(ff.addr.String())
	if err != nil {
		return err
	}
	req.Headers.Set("X-Forwarded-For", host)
	return nil
}
