package headers

import (
	"sort"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// slot is one stored header entry. Names are kept lowercased; repeated cookie
// headers occupy one slot each, everything else merges into a single slot.
type slot struct {
	name  string
	value string
}

// Headers is a case-insensitive, insertion-ordered header store with
// multi-value semantics for cookie headers.
type Headers struct {
	slots []slot
}

func New() *Headers {
	return &Headers{}
}

// FromMap builds a store from a plain mapping. Keys are walked in sorted
// order so construction is deterministic. Entries that fail validation are
// dropped, never reported.
func FromMap(init map[string]string) *Headers {
	h := New()
	keys := make([]string, 0, len(init))
	for k := range init {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Append(k, init[k])
	}
	return h
}

// FromPairs builds a store from an ordered pair list, preserving order.
func FromPairs(pairs [][2]string) *Headers {
	h := New()
	for _, p := range pairs {
		h.Append(p[0], p[1])
	}
	return h
}

func (h *Headers) Clone() *Headers {
	out := &Headers{slots: make([]slot, len(h.slots))}
	copy(out.slots, h.slots)
	return out
}

// Set stores value as the only slot for name, replacing every existing match.
// An invalid name/value pair is a silent no-op; the return value lets strict
// callers detect the drop.
func (h *Headers) Set(name, value string) bool {
	if !valid(name, value) {
		return false
	}
	h.Delete(name)
	h.slots = append(h.slots, slot{name: strings.ToLower(name), value: value})
	return true
}

// Append adds value under name. Cookie headers always get a fresh slot so an
// arbitrary number of them can coexist; any other header merges into its
// existing slot joined by ", ".
func (h *Headers) Append(name, value string) bool {
	if !valid(name, value) {
		return false
	}
	lower := strings.ToLower(name)
	if !isCookie(lower) {
		for i := range h.slots {
			if h.slots[i].name == lower {
				h.slots[i].value += ", " + value
				return true
			}
		}
	}
	h.slots = append(h.slots, slot{name: lower, value: value})
	return true
}

// Get returns the first value stored under name. For a merged header this is
// the full comma-joined string; use GetAll for the logical values.
func (h *Headers) Get(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, s := range h.slots {
		if s.name == lower {
			return s.value, true
		}
	}
	return "", false
}

// GetAll returns the logical values stored under name. Cookie slots come back
// verbatim, one element per slot. Merged headers are split on "," with each
// segment trimmed, which is lossy for values containing a literal comma.
func (h *Headers) GetAll(name string) []string {
	lower := strings.ToLower(name)
	if isCookie(lower) {
		var out []string
		for _, s := range h.slots {
			if s.name == lower {
				out = append(out, s.value)
			}
		}
		return out
	}
	merged, ok := h.Get(name)
	if !ok {
		return nil
	}
	parts := strings.Split(merged, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func (h *Headers) Delete(name string) {
	lower := strings.ToLower(name)
	kept := h.slots[:0]
	for _, s := range h.slots {
		if s.name != lower {
			kept = append(kept, s)
		}
	}
	h.slots = kept
}

func (h *Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Len counts stored slots; repeated cookie headers count individually.
func (h *Headers) Len() int {
	return len(h.slots)
}

func (h *Headers) Entries() [][2]string {
	out := make([][2]string, 0, len(h.slots))
	for _, s := range h.slots {
		out = append(out, [2]string{s.name, s.value})
	}
	return out
}

func (h *Headers) Keys() []string {
	out := make([]string, 0, len(h.slots))
	for _, s := range h.slots {
		out = append(out, s.name)
	}
	return out
}

func (h *Headers) Values() []string {
	out := make([]string, 0, len(h.slots))
	for _, s := range h.slots {
		out = append(out, s.value)
	}
	return out
}

func (h *Headers) Range(fn func(name, value string)) {
	for _, s := range h.slots {
		fn(s.name, s.value)
	}
}

// valid is the host-acceptability probe: a pair is storable iff the transport
// layer would agree to put it on the wire.
func valid(name, value string) bool {
	return name != "" &&
		httpguts.ValidHeaderFieldName(name) &&
		httpguts.ValidHeaderFieldValue(value)
}

func isCookie(lower string) bool {
	return lower == "cookie" || lower == "set-cookie"
}
