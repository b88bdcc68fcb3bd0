package urlapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		expect [][2]string
	}{
		{
			name:   "leading question mark tolerated",
			query:  "?a=1&b=2",
			expect: [][2]string{{"a", "1"}, {"b", "2"}},
		},
		{
			name:   "duplicates kept in order",
			query:  "x=1&y=2&x=3",
			expect: [][2]string{{"x", "1"}, {"y", "2"}, {"x", "3"}},
		},
		{
			name:   "escapes decoded",
			query:  "q=caf%C3%A9&s=a+b",
			expect: [][2]string{{"q", "café"}, {"s", "a b"}},
		},
		{
			name:   "empty query",
			query:  "",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := ParseSearch(tt.query)
			assert.Equal(t, len(tt.expect), sp.Len())
			for i, p := range sp.Entries() {
				assert.Equal(t, tt.expect[i], p)
			}
		})
	}
}

func TestSearchParamsSetKeepsPosition(t *testing.T) {
	sp := ParseSearch("a=1&b=2&c=3&b=4")
	sp.Set("b", "X")

	assert.Equal(t, []string{"a", "b", "c"}, sp.Keys())
	v, _ := sp.Get("b")
	assert.Equal(t, "X", v)
}

func TestSearchParamsGetAllAndDelete(t *testing.T) {
	sp := NewSearchParams()
	sp.Append("k", "1")
	sp.Append("k", "2")
	sp.Append("other", "x")

	assert.Equal(t, []string{"1", "2"}, sp.GetAll("k"))
	sp.Delete("k")
	assert.False(t, sp.Has("k"))
	assert.True(t, sp.Has("other"))
}

func TestSearchParamsSortStable(t *testing.T) {
	sp := ParseSearch("b=1&a=2&b=3&a=4")
	sp.Sort()

	assert.Equal(t, [][2]string{{"a", "2"}, {"a", "4"}, {"b", "1"}, {"b", "3"}}, sp.Entries())
}

func TestSearchParamsEncode(t *testing.T) {
	sp := NewSearchParams()
	sp.Append("q", "café au lait")
	sp.Append("empty", "")

	assert.Equal(t, "q=caf%C3%A9+au+lait&empty=", sp.Encode())

	again := ParseSearch(sp.Encode())
	assert.Equal(t, sp.Entries(), again.Entries())
}

func TestURLAccessors(t *testing.T) {
	u, err := Parse("https://example.com:8443/path/to/it?a=1&b=2#frag")
	require.NoError(t, err)

	assert.Equal(t, "https:", u.Protocol())
	assert.Equal(t, "example.com:8443", u.Host())
	assert.Equal(t, "example.com", u.Hostname())
	assert.Equal(t, "8443", u.Port())
	assert.Equal(t, "/path/to/it", u.Pathname())
	assert.Equal(t, "?a=1&b=2", u.Search())
	assert.Equal(t, "#frag", u.Hash())
	assert.Equal(t, "https://example.com:8443", u.Origin())
	assert.Equal(t, "https://example.com:8443/path/to/it?a=1&b=2#frag", u.Href())
}

func TestURLEmptyParts(t *testing.T) {
	u, err := Parse("https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, "", u.Search())
	assert.Equal(t, "", u.Hash())
	assert.Equal(t, "", u.Port())
}

func TestURLRelativeOrigin(t *testing.T) {
	u, err := Parse("/just/a/path")
	require.NoError(t, err)
	assert.Equal(t, "null", u.Origin())
	assert.Equal(t, "", u.Protocol())
}

func TestURLSearchParamsRoundTrip(t *testing.T) {
	u := MustParse("https://example.com/?a=1")

	sp := u.SearchParams()
	sp.Append("b", "2")
	u.SetSearchParams(sp)

	assert.Equal(t, "https://example.com/?a=1&b=2", u.Href())
}

func TestURLMutators(t *testing.T) {
	u := MustParse("https://example.com/old?keep=1")
	u.SetPathname("new/place")
	u.SetHash("#section")

	assert.Equal(t, "/new/place", u.Pathname())
	assert.Equal(t, "#section", u.Hash())
	assert.Contains(t, u.Href(), "/new/place?keep=1#section")
}

func TestParseInvalid(t *testing.T) {
	u, err := Parse("http://bad url with spaces\x7f")
	assert.Error(t, err)
	assert.Nil(t, u)
}
