package headers

import (
	"bytes"
	"net/textproto"
)

// Parse reads a CRLF-separated header block ("Name: value" lines, no start
// line) into a store. Lines without a colon are skipped; entries that fail
// validation are dropped the same way they would be on Append.
func Parse(block []byte) *Headers {
	h := New()
	remaining := block
	for len(remaining) > 0 {
		lineEnd := bytes.Index(remaining, []byte("\r\n"))
		if lineEnd == -1 {
			lineEnd = len(remaining)
		}

		line := remaining[:lineEnd]
		if len(line) == 0 {
			break
		}

		colonIdx := bytes.IndexByte(line, ':')
		if colonIdx != -1 {
			key := bytes.TrimSpace(line[:colonIdx])
			value := bytes.TrimSpace(line[colonIdx+1:])
			h.Append(string(key), string(value))
		}

		if lineEnd == len(remaining) {
			break
		}
		remaining = remaining[lineEnd+2:]
	}
	return h
}

// Marshal serializes every slot as a "Name: value" CRLF line with canonical
// wire casing, one line per slot, so repeated cookie headers come out as
// separate lines.
func (h *Headers) Marshal() []byte {
	size := 0
	for _, s := range h.slots {
		size += len(s.name) + 2 + len(s.value) + 2
	}

	buf := make([]byte, 0, size)
	for _, s := range h.slots {
		buf = append(buf, textproto.CanonicalMIMEHeaderKey(s.name)...)
		buf = append(buf, ':', ' ')
		buf = append(buf, s.value...)
		buf = append(buf, '\r', '\n')
	}
	return buf
}
