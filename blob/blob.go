package blob

import (
	"fmt"
	"io"
)

const DefaultType = "application/octet-stream"

// ByteSource is anything that can hand over its raw content, such as an
// attachment object coming from an adapter layer.
type ByteSource interface {
	Bytes() []byte
}

// Blob is an immutable named byte payload with an associated MIME type.
type Blob struct {
	data     []byte
	mimeType string
	name     string
}

func New(parts []any, mimeType string) (*Blob, error) {
	var data []byte
	for _, part := range parts {
		b, err := Normalize(part)
		if err != nil {
			return nil, err
		}
		data = append(data, b...)
	}
	if mimeType == "" {
		mimeType = DefaultType
	}
	return &Blob{data: data, mimeType: mimeType}, nil
}

func FromBytes(data []byte, mimeType string) *Blob {
	if mimeType == "" {
		mimeType = DefaultType
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Blob{data: owned, mimeType: mimeType}
}

func FromString(s string, mimeType string) *Blob {
	if mimeType == "" {
		mimeType = DefaultType
	}
	return &Blob{data: []byte(s), mimeType: mimeType}
}

// NewFile builds a named blob, the shim equivalent of a file attachment.
func NewFile(data []byte, name string, mimeType string) *Blob {
	b := FromBytes(data, mimeType)
	b.name = name
	return b
}

func (b *Blob) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

func (b *Blob) Type() string { return b.mimeType }
func (b *Blob) Name() string { return b.name }
func (b *Blob) Size() int    { return len(b.data) }
func (b *Blob) Text() string { return string(b.data) }

// Slice returns a new blob over the half-open range [start, end), clamping
// out-of-range indexes the way the web API does. Negative indexes count from
// the end.
func (b *Blob) Slice(start, end int, mimeType string) *Blob {
	size := len(b.data)
	if start < 0 {
		start += size
	}
	if end < 0 {
		end += size
	}
	start = clamp(start, 0, size)
	end = clamp(end, 0, size)
	if end < start {
		end = start
	}
	if mimeType == "" {
		mimeType = b.mimeType
	}
	return FromBytes(b.data[start:end], mimeType)
}

func (b *Blob) Reader() io.Reader {
	return &reader{data: b.data}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize flattens any supported byte-carrying value into a byte slice.
// Body setters and the multipart codec go through here so they never have to
// care what shape an attachment arrived in.
func Normalize(v any) ([]byte, error) {
	switch src := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		out := make([]byte, len(src))
		copy(out, src)
		return out, nil
	case string:
		return []byte(src), nil
	case *Blob:
		return src.Bytes(), nil
	case ByteSource:
		raw := src.Bytes()
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	case io.Reader:
		return io.ReadAll(src)
	case fmt.Stringer:
		return []byte(src.String()), nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	return n, nil
}
