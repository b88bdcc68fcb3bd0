package formdata

import (
	"errors"
	"regexp"
	"strings"

	"webshim/blob"
	"webshim/headers"
)

// ErrNoBoundary is returned when neither the content type nor the body's
// first line yields a multipart boundary. It is the only fatal decode
// failure; malformed segments are skipped, not surfaced.
var ErrNoBoundary = errors.New("formdata: unable to determine multipart boundary")

var (
	boundaryParam = regexp.MustCompile(`(?i)boundary="?([^";,]+)"?`)
	nameParam     = regexp.MustCompile(`(?:^|;)\s*name="([^"]*)"`)
	filenameParam = regexp.MustCompile(`filename="([^"]*)"`)

	quoteUnescaper = strings.NewReplacer("%22", `"`, "%0D", "\r", "%0A", "\n")
)

// Decode parses a multipart/form-data payload back into an ordered field
// sequence. The boundary comes from the boundary= parameter of contentType
// when present, otherwise from the body's first line when it starts with
// "--" (payloads missing a proper content type are tolerated this way).
func Decode(body []byte, contentType string) (*FormData, error) {
	boundary := extractBoundary(body, contentType)
	if boundary == "" {
		return nil, ErrNoBoundary
	}

	fd := New()
	segments := strings.Split(string(body), "--"+boundary)
	if len(segments) < 3 {
		// No interior segment between the first delimiter and the closer.
		return fd, nil
	}

	// segments[0] is the preamble, the last one is the trailing closer.
	for _, segment := range segments[1 : len(segments)-1] {
		decodeSegment(fd, segment)
	}
	return fd, nil
}

func extractBoundary(body []byte, contentType string) string {
	if m := boundaryParam.FindStringSubmatch(contentType); m != nil {
		return strings.TrimSpace(m[1])
	}

	line, _, _ := strings.Cut(string(body), "\r\n")
	line = strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(line, "--"); ok && rest != "" {
		return strings.TrimSuffix(rest, "--")
	}
	return ""
}

// decodeSegment parses one delimited segment and appends the recovered field.
// Segments without a header/body separator or without a parseable
// Content-Disposition are dropped silently so one bad segment cannot sink
// the rest of the payload.
func decodeSegment(fd *FormData, segment string) {
	segment = strings.TrimPrefix(segment, "\r\n")

	sep := strings.Index(segment, "\r\n\r\n")
	if sep == -1 {
		return
	}
	headerBlock := segment[:sep+2]
	content := strings.TrimSuffix(segment[sep+4:], "\r\n")

	h := headers.Parse([]byte(headerBlock))
	disposition, ok := h.Get("Content-Disposition")
	if !ok || !strings.HasPrefix(strings.ToLower(disposition), "form-data") {
		return
	}

	nameMatch := nameParam.FindStringSubmatch(disposition)
	if nameMatch == nil {
		return
	}
	name := quoteUnescaper.Replace(nameMatch[1])

	filenameMatch := filenameParam.FindStringSubmatch(disposition)
	if filenameMatch == nil {
		fd.Append(name, content)
		return
	}

	filename := quoteUnescaper.Replace(filenameMatch[1])
	mimeType, ok := h.Get("Content-Type")
	if !ok {
		mimeType = blob.DefaultType
	}
	fd.AppendFile(name, blob.NewFile([]byte(content), filename, mimeType), filename)
}
