package middleware

import (
	"webshim/fetch"
)

type ServerHeader struct {
	name string
}

func NewServerHeader(name string) *ServerHeader {
	return &ServerHeader{name: name}
}

func (sh *ServerHeader) HandleResponse(resp *fetch.Response) error {
	resp.Headers.Set("Server", sh.name)
	return nil
}
