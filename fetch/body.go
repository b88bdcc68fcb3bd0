package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"webshim/blob"
	"webshim/formdata"
	"webshim/headers"
	"webshim/stream"
)

var (
	ErrBodyConsumed  = errors.New("fetch: body already consumed")
	ErrUnsupportedCT = errors.New("fetch: unsupported content type for form decoding")
)

// Body is the one-shot payload shared by Request and Response. Every
// accessor consumes it; a second access reports ErrBodyConsumed instead of
// silently returning stale bytes. The header store is consulted at call
// time, so Content-Type written after construction still steers decoding.
type Body struct {
	headers *headers.Headers
	data    []byte
	used    bool
}

func newBody(h *headers.Headers) *Body {
	return &Body{headers: h}
}

func (b *Body) Used() bool {
	return b.used
}

func (b *Body) setData(data []byte) {
	b.data = data
	b.used = false
}

func (b *Body) consume() ([]byte, error) {
	if b.used {
		return nil, ErrBodyConsumed
	}
	b.used = true
	return b.data, nil
}

// Bytes consumes the body and returns its raw payload.
func (b *Body) Bytes() ([]byte, error) {
	data, err := b.consume()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (b *Body) Text() (string, error) {
	data, err := b.consume()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (b *Body) JSON(v any) error {
	data, err := b.consume()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode json body: %w", err)
	}
	return nil
}

// Blob consumes the body into a blob typed by the current Content-Type.
func (b *Body) Blob() (*blob.Blob, error) {
	data, err := b.consume()
	if err != nil {
		return nil, err
	}
	mimeType, _ := b.headers.Get("Content-Type")
	return blob.FromBytes(data, mimeType), nil
}

// FormData consumes the body and decodes it according to the current
// Content-Type: multipart payloads go through the multipart codec, anything
// declared urlencoded through the query-string parser.
func (b *Body) FormData() (*formdata.FormData, error) {
	contentType, _ := b.headers.Get("Content-Type")
	data, err := b.consume()
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		return formdata.Decode(data, contentType)
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"), contentType == "":
		return formdata.ParseQuery(string(data)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCT, contentType)
	}
}

// Stream consumes the body into a readable stream sham.
func (b *Body) Stream() (*stream.Readable, error) {
	data, err := b.consume()
	if err != nil {
		return nil, err
	}
	return stream.FromBytes(data), nil
}
