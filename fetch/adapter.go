package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"sort"

	"webshim/headers"
	"webshim/urlapi"
)

// Adapters between the shimmed object model and net/http. These copy state
// into freshly constructed values instead of augmenting the host objects in
// place; the two models never share mutable structure.

// FromHTTPRequest translates an inbound host request. The body is read to
// completion here because the shimmed model is fully synchronous.
func FromHTTPRequest(req *http.Request) (*Request, error) {
	var data []byte
	if req.Body != nil {
		var err error
		data, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
	}

	u, err := urlapi.Parse(req.URL.String())
	if err != nil {
		return nil, err
	}

	h := copyHostHeaders(req.Header)
	out := &Request{
		Method:  req.Method,
		URL:     u,
		Headers: h,
		Body:    newBody(h),
	}
	out.setData(data)
	return out, nil
}

// HTTPRequest translates the shimmed request into an outbound host request.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if len(r.data) > 0 {
		body = bytes.NewReader(r.data)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL.Href(), body)
	if err != nil {
		return nil, fmt.Errorf("build outbound request: %w", err)
	}
	writeHostHeaders(req.Header, r.Headers)
	return req, nil
}

// FromHTTPResponse translates a host response received by the client.
func FromHTTPResponse(res *http.Response) (*Response, error) {
	var data []byte
	if res.Body != nil {
		defer res.Body.Close()
		var err error
		data, err = io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
	}

	h := copyHostHeaders(res.Header)
	out := &Response{
		StatusCode: res.StatusCode,
		Headers:    h,
		Body:       newBody(h),
	}
	out.setData(data)
	return out, nil
}

// Write translates the shimmed response onto a host response writer.
func (r *Response) Write(w http.ResponseWriter) error {
	writeHostHeaders(w.Header(), r.Headers)

	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(r.data) > 0 {
		if _, err := w.Write(r.data); err != nil {
			return fmt.Errorf("write response body: %w", err)
		}
	}
	return nil
}

// copyHostHeaders feeds every host header value through Append so the
// store's validation and cookie multi-slot rules apply. Host maps are
// unordered, so keys are walked sorted for determinism; values keep their
// slice order.
func copyHostHeaders(src http.Header) *headers.Headers {
	h := headers.New()
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range src[k] {
			h.Append(k, v)
		}
	}
	return h
}

// writeHostHeaders emits one host header value per slot, so repeated cookie
// slots become repeated wire headers.
func writeHostHeaders(dst http.Header, src *headers.Headers) {
	src.Range(func(name, value string) {
		dst[textproto.CanonicalMIMEHeaderKey(name)] = append(dst[textproto.CanonicalMIMEHeaderKey(name)], value)
	})
}
