package urlapi

import (
	"fmt"
	"net/url"
	"strings"
)

// URL wraps net/url with web-style accessors (Protocol keeps its trailing
// colon, Search its leading question mark, Hash its leading hash), so code
// written against the web object model ports over without translation at
// every call site.
type URL struct {
	u *url.URL
}

func Parse(raw string) (*URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	return &URL{u: u}, nil
}

// MustParse is for fixed URLs known valid at compile time.
func MustParse(raw string) *URL {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *URL) Href() string {
	return u.u.String()
}

func (u *URL) Protocol() string {
	if u.u.Scheme == "" {
		return ""
	}
	return u.u.Scheme + ":"
}

func (u *URL) Host() string     { return u.u.Host }
func (u *URL) Hostname() string { return u.u.Hostname() }
func (u *URL) Port() string     { return u.u.Port() }
func (u *URL) Pathname() string { return u.u.Path }

func (u *URL) Origin() string {
	if u.u.Scheme == "" || u.u.Host == "" {
		return "null"
	}
	return u.u.Scheme + "://" + u.u.Host
}

func (u *URL) Search() string {
	if u.u.RawQuery == "" {
		return ""
	}
	return "?" + u.u.RawQuery
}

func (u *URL) Hash() string {
	if u.u.Fragment == "" {
		return ""
	}
	return "#" + u.u.Fragment
}

// SearchParams returns a parsed view of the query. Mutations are written
// back through SetSearchParams; the view itself is a snapshot.
func (u *URL) SearchParams() *SearchParams {
	return ParseSearch(u.u.RawQuery)
}

func (u *URL) SetSearchParams(sp *SearchParams) {
	u.u.RawQuery = sp.Encode()
}

func (u *URL) SetPathname(path string) {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.u.Path = path
}

func (u *URL) SetHash(hash string) {
	u.u.Fragment = strings.TrimPrefix(hash, "#")
}

// Std exposes the wrapped net/url value for adapter layers.
func (u *URL) Std() *url.URL {
	return u.u
}

func (u *URL) String() string {
	return u.Href()
}
