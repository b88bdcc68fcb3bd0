package fetch

import (
	"fmt"
	"strings"

	"webshim/blob"
	"webshim/formdata"
	"webshim/headers"
	"webshim/urlapi"
)

// Request is the shimmed request object: a method, a parsed URL, a header
// store, and a one-shot body. It is a plain value translated to and from
// host-native requests by explicit adapters, never by mutating the native
// object.
type Request struct {
	Method  string
	URL     *urlapi.URL
	Headers *headers.Headers
	*Body
}

func NewRequest(method, rawurl string) (*Request, error) {
	if method == "" {
		method = "GET"
	}
	u, err := urlapi.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	h := headers.New()
	return &Request{
		Method:  strings.ToUpper(method),
		URL:     u,
		Headers: h,
		Body:    newBody(h),
	}, nil
}

// SetBody installs a payload from any supported byte-carrying value and, if
// contentType is non-empty, records it in the header store.
func (r *Request) SetBody(v any, contentType string) error {
	data, err := blob.Normalize(v)
	if err != nil {
		return fmt.Errorf("set request body: %w", err)
	}
	r.setData(data)
	if contentType != "" {
		r.Headers.Set("Content-Type", contentType)
	}
	return nil
}

// SetForm encodes the form as the request payload and writes the returned
// content type (which names the boundary) back into the header store.
func (r *Request) SetForm(fd *formdata.FormData) error {
	body, contentType, err := formdata.Encode(fd)
	if err != nil {
		return err
	}
	r.setData(body)
	r.Headers.Set("Content-Type", contentType)
	return nil
}

// Clone copies the request, including an unconsumed view of the body.
func (r *Request) Clone() *Request {
	h := r.Headers.Clone()
	out := &Request{
		Method:  r.Method,
		URL:     urlapi.MustParse(r.URL.Href()),
		Headers: h,
		Body:    newBody(h),
	}
	out.setData(r.data)
	return out
}
