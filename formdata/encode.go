package formdata

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"webshim/blob"
	"webshim/internal/random"
)

const (
	boundaryPrefix       = "----WebShimFormBoundary"
	boundarySuffixLength = 24
)

var (
	randomizer = random.New()

	lineEnding = regexp.MustCompile(`\r\n|\r|\n`)

	quoteEscaper = strings.NewReplacer("\r", "%0D", "\n", "%0A", `"`, "%22")
)

// Encode serializes the form into a multipart/form-data payload under a
// freshly generated boundary and returns the body together with the
// Content-Type value naming that boundary. Owning request/response objects
// are responsible for writing the content type into their header store.
func Encode(fd *FormData) ([]byte, string, error) {
	suffix, err := randomizer.Digits(boundarySuffixLength)
	if err != nil {
		return nil, "", fmt.Errorf("generate boundary: %w", err)
	}
	boundary := boundaryPrefix + suffix

	var buf bytes.Buffer
	for _, f := range fd.fields {
		buf.WriteString("--")
		buf.WriteString(boundary)
		buf.WriteString("\r\n")
		buf.WriteString(`Content-Disposition: form-data; name="`)
		buf.WriteString(escapeName(f.Name))
		buf.WriteString(`"`)

		if f.IsFile() {
			buf.WriteString(`; filename="`)
			buf.WriteString(escapeFilename(f.Filename))
			buf.WriteString("\"\r\n")
			buf.WriteString("Content-Type: ")
			buf.WriteString(fileType(f.File))
			buf.WriteString("\r\n\r\n")
			buf.Write(f.File.Bytes())
		} else {
			buf.WriteString("\r\n\r\n")
			buf.WriteString(normalizeLineEndings(f.Value))
		}
		buf.WriteString("\r\n")
	}
	buf.WriteString("--")
	buf.WriteString(boundary)
	buf.WriteString("--\r\n")

	return buf.Bytes(), "multipart/form-data; boundary=" + boundary, nil
}

// normalizeLineEndings rewrites every bare CR, bare LF, or CRLF to CRLF.
// A lone CR in a text value is therefore not byte-identical after a
// round-trip; that is a documented property of the wire format, not a bug.
func normalizeLineEndings(s string) string {
	return lineEnding.ReplaceAllString(s, "\r\n")
}

// escapeName percent-escapes CR, LF and double quotes after normalizing line
// endings, so the name survives inside a quoted disposition parameter.
func escapeName(name string) string {
	return quoteEscaper.Replace(normalizeLineEndings(name))
}

// escapeFilename escapes without normalizing: filenames are opaque labels,
// not text content.
func escapeFilename(filename string) string {
	return quoteEscaper.Replace(filename)
}

func fileType(file *blob.Blob) string {
	if t := file.Type(); t != "" {
		return t
	}
	return blob.DefaultType
}
