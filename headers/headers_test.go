package headers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetCaseInsensitive(t *testing.T) {
	h := New()
	assert.True(t, h.Set("Content-Type", "text/html"))

	for _, name := range []string{"content-type", "CONTENT-TYPE", "Content-Type", "cOnTeNt-TyPe"} {
		v, ok := h.Get(name)
		assert.True(t, ok, name)
		assert.Equal(t, "text/html", v, name)
		assert.True(t, h.Has(name), name)
	}
}

func TestSetReplacesAllMatches(t *testing.T) {
	h := New()
	h.Append("Accept", "text/html")
	h.Append("ACCEPT", "application/json")
	h.Set("accept", "*/*")

	v, ok := h.Get("Accept")
	assert.True(t, ok)
	assert.Equal(t, "*/*", v)
	assert.Equal(t, 1, h.Len())
}

func TestAppendMergesNonCookie(t *testing.T) {
	h := New()
	h.Append("Accept", "text/html")
	h.Append("accept", "application/json")

	v, _ := h.Get("Accept")
	assert.Equal(t, "text/html, application/json", v)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, []string{"text/html", "application/json"}, h.GetAll("Accept"))
}

func TestAppendCookiesKeepSeparateSlots(t *testing.T) {
	h := New()
	cookies := []string{
		"session=abc; Path=/; HttpOnly",
		"theme=dark; Max-Age=3600",
		"lang=en",
	}
	for _, c := range cookies {
		assert.True(t, h.Append("Set-Cookie", c))
	}

	all := h.GetAll("set-cookie")
	assert.Len(t, all, len(cookies))
	for i, c := range cookies {
		assert.Equal(t, c, all[i])
	}

	// Get returns the first slot, untouched.
	first, ok := h.Get("SET-COOKIE")
	assert.True(t, ok)
	assert.Equal(t, cookies[0], first)
	assert.Equal(t, 3, h.Len())
}

func TestCookieValuesNeverCommaSplit(t *testing.T) {
	h := New()
	h.Append("Set-Cookie", "pair=a,b; Path=/")

	all := h.GetAll("Set-Cookie")
	assert.Equal(t, []string{"pair=a,b; Path=/"}, all)
}

func TestGetAllLossyCommaHeuristic(t *testing.T) {
	h := New()
	h.Set("Accept", "text/html;q=0.9, application/json")

	// The split on "," is a heuristic; a literal comma inside one logical
	// value is indistinguishable from a separator.
	assert.Equal(t, []string{"text/html;q=0.9", "application/json"}, h.GetAll("Accept"))
}

func TestInvalidHeadersSilentlyDropped(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"empty name", "", "value"},
		{"name with space", "Bad Name", "value"},
		{"name with newline", "Bad\nName", "value"},
		{"value with newline", "X-Key", "bad\nvalue"},
		{"value with NUL", "X-Key", "bad\x00value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			assert.False(t, h.Set(tt.key, tt.value))
			assert.False(t, h.Append(tt.key, tt.value))
			assert.Equal(t, 0, h.Len())
			assert.False(t, h.Has(tt.key))
		})
	}
}

func TestDelete(t *testing.T) {
	h := New()
	h.Append("Set-Cookie", "a=1")
	h.Append("set-cookie", "b=2")
	h.Set("X-Other", "keep")

	h.Delete("SET-COOKIE")
	assert.Empty(t, h.GetAll("Set-Cookie"))
	assert.True(t, h.Has("X-Other"))
	assert.Equal(t, 1, h.Len())
}

func TestGetMissing(t *testing.T) {
	h := New()
	v, ok := h.Get("Nope")
	assert.False(t, ok)
	assert.Equal(t, "", v)
	assert.Nil(t, h.GetAll("Nope"))
}

func TestIterationOrder(t *testing.T) {
	h := New()
	h.Append("Z-First", "1")
	h.Append("a-second", "2")
	h.Append("Set-Cookie", "c1=x")
	h.Append("M-Third", "3")
	h.Append("Set-Cookie", "c2=y")

	assert.Equal(t, []string{"z-first", "a-second", "set-cookie", "m-third", "set-cookie"}, h.Keys())
	assert.Equal(t, []string{"1", "2", "c1=x", "3", "c2=y"}, h.Values())

	var seen []string
	h.Range(func(name, value string) {
		seen = append(seen, name+"="+value)
	})
	assert.Equal(t, []string{"z-first=1", "a-second=2", "set-cookie=c1=x", "m-third=3", "set-cookie=c2=y"}, seen)
}

func TestMergedSlotKeepsPosition(t *testing.T) {
	h := New()
	h.Append("A", "1")
	h.Append("B", "2")
	h.Append("a", "3")

	assert.Equal(t, []string{"a", "b"}, h.Keys())
	v, _ := h.Get("A")
	assert.Equal(t, "1, 3", v)
}

func TestFromMap(t *testing.T) {
	h := FromMap(map[string]string{
		"Content-Type": "application/json",
		"Accept":       "*/*",
		"Bad\nName":    "dropped",
	})

	// Sorted key order makes construction deterministic.
	assert.Equal(t, []string{"accept", "content-type"}, h.Keys())
	assert.Equal(t, 2, h.Len())
}

func TestFromPairs(t *testing.T) {
	h := FromPairs([][2]string{
		{"Set-Cookie", "a=1"},
		{"X-One", "1"},
		{"Set-Cookie", "b=2"},
		{"", "dropped"},
	})

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []string{"a=1", "b=2"}, h.GetAll("Set-Cookie"))
}

func TestClone(t *testing.T) {
	h := New()
	h.Set("X-A", "1")
	c := h.Clone()
	c.Set("X-A", "2")

	v, _ := h.Get("X-A")
	assert.Equal(t, "1", v)
	v, _ = c.Get("X-A")
	assert.Equal(t, "2", v)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		block       string
		expectKeys  []string
		expectPairs map[string]string
	}{
		{
			name:       "simple block",
			block:      "Host: example.com\r\nX-Custom: value\r\n",
			expectKeys: []string{"host", "x-custom"},
			expectPairs: map[string]string{
				"Host":     "example.com",
				"X-Custom": "value",
			},
		},
		{
			name:       "whitespace and missing colon",
			block:      "K1: V1\r\nK2:V2\r\n K3 : V3 \r\nNoColon\r\n",
			expectKeys: []string{"k1", "k2", "k3"},
			expectPairs: map[string]string{
				"K1": "V1",
				"K2": "V2",
				"K3": "V3",
			},
		},
		{
			name:       "no trailing CRLF",
			block:      "K1: V1",
			expectKeys: []string{"k1"},
			expectPairs: map[string]string{
				"K1": "V1",
			},
		},
		{
			name:        "leading blank line stops parse",
			block:       "\r\nK1: V1",
			expectKeys:  nil,
			expectPairs: map[string]string{},
		},
		{
			name:       "repeated cookies stay separate",
			block:      "Set-Cookie: a=1\r\nSet-Cookie: b=2\r\n",
			expectKeys: []string{"set-cookie", "set-cookie"},
			expectPairs: map[string]string{
				"Set-Cookie": "a=1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Parse([]byte(tt.block))
			assert.Equal(t, tt.expectKeys, orNil(h.Keys()))
			for k, v := range tt.expectPairs {
				got, ok := h.Get(k)
				assert.True(t, ok, k)
				assert.Equal(t, v, got, k)
			}
		})
	}
}

func TestMarshal(t *testing.T) {
	h := New()
	h.Set("content-type", "text/plain")
	h.Append("Set-Cookie", "a=1")
	h.Append("Set-Cookie", "b=2")

	out := string(h.Marshal())
	assert.Equal(t, "Content-Type: text/plain\r\nSet-Cookie: a=1\r\nSet-Cookie: b=2\r\n", out)
	assert.Equal(t, 2, strings.Count(out, "Set-Cookie:"))
}

func TestParseMarshalRoundTrip(t *testing.T) {
	block := []byte("Content-Type: text/html\r\nSet-Cookie: s=1\r\nSet-Cookie: s=2\r\nAccept: a, b\r\n")
	h := Parse(block)
	again := Parse(h.Marshal())
	assert.Equal(t, h.Entries(), again.Entries())
}

func orNil(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	return keys
}
