package fetch

import (
	"context"
	"fmt"
	"net/http"
)

// Client performs shimmed requests over a host HTTP client.
type Client struct {
	hc *http.Client
}

func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{hc: hc}
}

func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	hostReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}
	hostRes, err := c.hc.Do(hostReq)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.URL.Href(), err)
	}
	return FromHTTPResponse(hostRes)
}

// Do sends req over the default host client.
func Do(ctx context.Context, req *Request) (*Response, error) {
	return NewClient(nil).Do(ctx, req)
}

// Get is the one-line fetch for simple cases.
func Get(ctx context.Context, rawurl string) (*Response, error) {
	req, err := NewRequest(http.MethodGet, rawurl)
	if err != nil {
		return nil, err
	}
	return Do(ctx, req)
}
