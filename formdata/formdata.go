package formdata

import (
	"errors"
	"net/url"
	"strings"

	"webshim/blob"
)

var ErrArgument = errors.New("formdata: missing required argument")

// Field is one named form entry: either a text value or a file attachment
// with a filename. File is nil for text fields.
type Field struct {
	Name     string
	Value    string
	File     *blob.Blob
	Filename string
}

func (f Field) IsFile() bool {
	return f.File != nil
}

// FormData is an ordered sequence of fields. Insertion order is significant
// and duplicate names are allowed, so this is a list, not a map.
type FormData struct {
	fields []Field
}

func New() *FormData {
	return &FormData{}
}

// ParseQuery builds a form from a query-string-like initializer such as
// "a=1&b=2", keeping pair order. Pairs that fail percent-decoding are
// dropped.
func ParseQuery(qs string) *FormData {
	fd := New()
	for _, pair := range strings.Split(qs, "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		fd.Append(name, value)
	}
	return fd
}

// FromEntries builds a form from alternating name/value strings. An odd
// argument count means a name arrived without its value.
func FromEntries(entries ...string) (*FormData, error) {
	if len(entries)%2 != 0 {
		return nil, ErrArgument
	}
	fd := New()
	for i := 0; i < len(entries); i += 2 {
		fd.Append(entries[i], entries[i+1])
	}
	return fd, nil
}

// Append always adds a new slot, even when the name already exists.
func (fd *FormData) Append(name, value string) {
	fd.fields = append(fd.fields, Field{Name: name, Value: value})
}

// AppendFile adds a file slot. An empty filename falls back to the blob's
// own name, then to "blob".
func (fd *FormData) AppendFile(name string, file *blob.Blob, filename string) {
	fd.fields = append(fd.fields, Field{Name: name, File: file, Filename: fileNameOr(file, filename)})
}

// Set replaces the first slot matching name in place, removes every other
// slot with that name, and appends if none existed.
func (fd *FormData) Set(name, value string) {
	fd.set(Field{Name: name, Value: value})
}

func (fd *FormData) SetFile(name string, file *blob.Blob, filename string) {
	fd.set(Field{Name: name, File: file, Filename: fileNameOr(file, filename)})
}

func (fd *FormData) set(f Field) {
	replaced := false
	kept := fd.fields[:0]
	for _, existing := range fd.fields {
		if existing.Name != f.Name {
			kept = append(kept, existing)
			continue
		}
		if !replaced {
			kept = append(kept, f)
			replaced = true
		}
	}
	fd.fields = kept
	if !replaced {
		fd.fields = append(fd.fields, f)
	}
}

// Get returns the first field stored under name.
func (fd *FormData) Get(name string) (Field, bool) {
	for _, f := range fd.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// GetValue returns the first text value stored under name. File fields come
// back as their filename, mirroring how forms stringify attachments.
func (fd *FormData) GetValue(name string) (string, bool) {
	f, ok := fd.Get(name)
	if !ok {
		return "", false
	}
	if f.IsFile() {
		return f.Filename, true
	}
	return f.Value, true
}

func (fd *FormData) GetAll(name string) []Field {
	var out []Field
	for _, f := range fd.fields {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out
}

func (fd *FormData) Has(name string) bool {
	_, ok := fd.Get(name)
	return ok
}

func (fd *FormData) Delete(name string) {
	kept := fd.fields[:0]
	for _, f := range fd.fields {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	fd.fields = kept
}

func (fd *FormData) Len() int {
	return len(fd.fields)
}

// Entries returns the fields in insertion order.
func (fd *FormData) Entries() []Field {
	out := make([]Field, len(fd.fields))
	copy(out, fd.fields)
	return out
}

func (fd *FormData) Keys() []string {
	out := make([]string, 0, len(fd.fields))
	for _, f := range fd.fields {
		out = append(out, f.Name)
	}
	return out
}

func (fd *FormData) Range(fn func(Field)) {
	for _, f := range fd.fields {
		fn(f)
	}
}

func fileNameOr(file *blob.Blob, filename string) string {
	if filename != "" {
		return filename
	}
	if file != nil && file.Name() != "" {
		return file.Name()
	}
	return "blob"
}
