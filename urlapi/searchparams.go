package urlapi

import (
	"net/url"
	"sort"
	"strings"
)

// SearchParams is an ordered multi-map over query-string pairs. Duplicate
// names are allowed and insertion order is kept, matching the form-field
// container rather than net/url's unordered Values map.
type SearchParams struct {
	pairs [][2]string
}

func NewSearchParams() *SearchParams {
	return &SearchParams{}
}

// ParseSearch parses a query string, tolerating one leading "?". Pairs that
// fail percent-decoding are dropped.
func ParseSearch(qs string) *SearchParams {
	sp := NewSearchParams()
	qs = strings.TrimPrefix(qs, "?")
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
		sp.Append(name, value)
	}
	return sp
}

func (sp *SearchParams) Append(name, value string) {
	sp.pairs = append(sp.pairs, [2]string{name, value})
}

// Set replaces the first pair matching name in place, drops the rest, and
// appends when the name is absent.
func (sp *SearchParams) Set(name, value string) {
	replaced := false
	kept := sp.pairs[:0]
	for _, p := range sp.pairs {
		if p[0] != name {
			kept = append(kept, p)
			continue
		}
		if !replaced {
			kept = append(kept, [2]string{name, value})
			replaced = true
		}
	}
	sp.pairs = kept
	if !replaced {
		sp.pairs = append(sp.pairs, [2]string{name, value})
	}
}

func (sp *SearchParams) Get(name string) (string, bool) {
	for _, p := range sp.pairs {
		if p[0] == name {
			return p[1], true
		}
	}
	return "", false
}

func (sp *SearchParams) GetAll(name string) []string {
	var out []string
	for _, p := range sp.pairs {
		if p[0] == name {
			out = append(out, p[1])
		}
	}
	return out
}

func (sp *SearchParams) Has(name string) bool {
	_, ok := sp.Get(name)
	return ok
}

func (sp *SearchParams) Delete(name string) {
	kept := sp.pairs[:0]
	for _, p := range sp.pairs {
		if p[0] != name {
			kept = append(kept, p)
		}
	}
	sp.pairs = kept
}

func (sp *SearchParams) Len() int {
	return len(sp.pairs)
}

func (sp *SearchParams) Keys() []string {
	out := make([]string, 0, len(sp.pairs))
	for _, p := range sp.pairs {
		out = append(out, p[0])
	}
	return out
}

func (sp *SearchParams) Entries() [][2]string {
	out := make([][2]string, len(sp.pairs))
	copy(out, sp.pairs)
	return out
}

func (sp *SearchParams) Range(fn func(name, value string)) {
	for _, p := range sp.pairs {
		fn(p[0], p[1])
	}
}

// Sort orders pairs by name, keeping the relative order of equal names.
func (sp *SearchParams) Sort() {
	sort.SliceStable(sp.pairs, func(i, j int) bool {
		return sp.pairs[i][0] < sp.pairs[j][0]
	})
}

// Encode serializes the pairs back into percent-escaped query form.
func (sp *SearchParams) Encode() string {
	var sb strings.Builder
	for i, p := range sp.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p[0]))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p[1]))
	}
	return sb.String()
}

func (sp *SearchParams) String() string {
	return sp.Encode()
}
