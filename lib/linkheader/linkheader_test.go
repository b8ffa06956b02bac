package linkheader

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSplitValues(t *testing.T) {
	testCases := []struct {
		text     string
		sep      string
		open     string
		close    string
		expected []string
	}{
		{text: "a,b,c", sep: ",", open: `"<`, close: `">`, expected: []string{"a", "b", "c"}},
		{text: `a,"b,c",d`, sep: ",", open: `"<`, close: `">`, expected: []string{"a", `"b,c"`, "d"}},
		{text: `a, "b, c\", c1", d`, sep: ",", open: `"<`, close: `">`, expected: []string{"a", ` "b, c\", c1"`, " d"}},
		{text: `a,"b,c",d`, sep: ";", open: `"<`, close: `">`, expected: []string{`a,"b,c",d`}},
		{text: `a;"b;c";d`, sep: ";", open: `"<`, close: `">`, expected: []string{"a", `"b;c"`, "d"}},
		{text: "a;<b;c>;d", sep: ";", open: `"<`, close: `">`, expected: []string{"a", "<b;c>", "d"}},
		{text: `"a;b";(c;d);e`, sep: ";", open: `"(`, close: `")`, expected: []string{`"a;b"`, "(c;d)", "e"}},
		{text: "", sep: ",", open: `"<`, close: `">`, expected: []string{""}},
		{text: `"unterminated\`, sep: ",", open: `"<`, close: `">`, expected: []string{`"unterminated\`}},
	}

	for _, test := range testCases {
		got := SplitValues(test.text, test.sep, test.open, test.close)
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Errorf("SplitValues(%q) mismatch (-want +got):\n%s", test.text, diff)
		}
	}
}

func TestParse(t *testing.T) {
	headers := http.Header{}
	headers.Add("Link", "<http://example.org/foo>; rel=foo")
	headers.Add("Link", " <http://example.org/bar> ; rel = bar ")
	headers.Add("Link", "<http://example.org/bas>; rel=bas; par = zzz , <http://example.org/bat>; rel = bat")
	headers.Add("Link", " <http://example.org/fie> ; par = fie ")
	headers.Add("Link", ` <http://example.org/fum> ; rel = "http://example.org/rel/fum" `)
	headers.Add("Link", ` <http://example.org/fas;far> ; rel = "http://example.org/rel/fas" `)

	links := Parse(headers)
	require.Equal(t, map[string]string{
		"foo":                        "http://example.org/foo",
		"bar":                        "http://example.org/bar",
		"bas":                        "http://example.org/bas",
		"bat":                        "http://example.org/bat",
		"http://example.org/rel/fum": "http://example.org/fum",
		"http://example.org/rel/fas": "http://example.org/fas;far",
	}, links)
}

func TestParseMultipleRelTypes(t *testing.T) {
	headers := http.Header{}
	headers.Add("Link", `<http://example.org/eval>; rel="describedby alternate"`)
	headers.Add("Link", `<http://example.org/eval2>; rel="alternate"`)

	links := Parse(headers)
	require.Equal(t, "http://example.org/eval", links["describedby"])
	require.Equal(t, "http://example.org/eval2", links["alternate"])
}

func TestParseNoLinks(t *testing.T) {
	require.Empty(t, Parse(http.Header{}))
}
