package fetch

import (
	"encoding/json"
	"fmt"
	"net/http"

	"webshim/blob"
	"webshim/formdata"
	"webshim/headers"
)

// Response is the shimmed response object, constructed by handlers and
// translated to the host response by an adapter.
type Response struct {
	StatusCode int
	Headers    *headers.Headers
	*Body
}

func NewResponse(status int, body []byte) *Response {
	h := headers.New()
	resp := &Response{
		StatusCode: status,
		Headers:    h,
		Body:       newBody(h),
	}
	resp.setData(body)
	return resp
}

// Text builds a plain-text response.
func Text(status int, s string) *Response {
	resp := NewResponse(status, []byte(s))
	resp.Headers.Set("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// JSON marshals v as the response payload.
func JSON(status int, v any) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json response: %w", err)
	}
	resp := NewResponse(status, data)
	resp.Headers.Set("Content-Type", "application/json")
	return resp, nil
}

// Redirect builds a redirect response. A zero status defaults to 302.
func Redirect(location string, status int) *Response {
	if status == 0 {
		status = http.StatusFound
	}
	resp := NewResponse(status, nil)
	resp.Headers.Set("Location", location)
	return resp
}

// Error builds a plain-text error response with the status text as fallback
// message.
func Error(status int, message string) *Response {
	if message == "" {
		message = http.StatusText(status)
	}
	return Text(status, message)
}

func (r *Response) StatusText() string {
	return http.StatusText(r.StatusCode)
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// SetBody installs a payload from any supported byte-carrying value.
func (r *Response) SetBody(v any, contentType string) error {
	data, err := blob.Normalize(v)
	if err != nil {
		return fmt.Errorf("set response body: %w", err)
	}
	r.setData(data)
	if contentType != "" {
		r.Headers.Set("Content-Type", contentType)
	}
	return nil
}

// SetForm encodes the form as the response payload and records the boundary
// content type in the header store.
func (r *Response) SetForm(fd *formdata.FormData) error {
	body, contentType, err := formdata.Encode(fd)
	if err != nil {
		return err
	}
	r.setData(body)
	r.Headers.Set("Content-Type", contentType)
	return nil
}

func (r *Response) Clone() *Response {
	h := r.Headers.Clone()
	out := &Response{
		StatusCode: r.StatusCode,
		Headers:    h,
		Body:       newBody(h),
	}
	out.setData(r.data)
	return out
}
