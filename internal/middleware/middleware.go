package middleware

import (
	"webshim/fetch"
)

type RequestMiddleware interface {
	HandleRequest(req *fetch.Request) error
}

type ResponseMiddleware interface {
	HandleResponse(resp *fetch.Response) error
}
