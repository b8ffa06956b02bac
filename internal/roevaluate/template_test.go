package roevaluate

import (
	"testing"

	"roeval/lib/rdfns"

	"github.com/stretchr/testify/require"
)

const serviceDescription = `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix roe: <http://purl.org/ro/service/evaluate/> .

<>
    rdfs:label "ROEvaluate" ;
    roe:checklist "/evaluate/checklist{?RO,minim,target,purpose}" ;
    roe:trafficlight_json "/evaluate/trafficlight_json{?RO,minim,target,purpose}" ;
    roe:trafficlight_html "/evaluate/trafficlight_html{?RO,minim,target,purpose}" .
`

func TestExtractChecklistTemplate(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		expected string
	}{
		{
			name:     "service description",
			doc:      serviceDescription,
			expected: "/evaluate/checklist{?RO,minim,target,purpose}",
		},
		{
			name: "renamed prefix",
			doc: `@prefix ev: <http://purl.org/ro/service/evaluate/> .
<> ev:checklist "/eval{?RO,minim,purpose}" .`,
			expected: "/eval{?RO,minim,purpose}",
		},
		{
			name:     "full predicate iri",
			doc:      `<> <http://purl.org/ro/service/evaluate/checklist> "/eval{?RO}" .`,
			expected: "/eval{?RO}",
		},
		{
			name: "sparql style prefix",
			doc: `PREFIX e: <http://purl.org/ro/service/evaluate/>
<> e:checklist "/eval{?RO}" .`,
			expected: "/eval{?RO}",
		},
		{
			name:     "undeclared roe prefix",
			doc:      `<> roe:checklist "/eval{?RO}" .`,
			expected: "/eval{?RO}",
		},
		{
			name:     "single quotes",
			doc:      `<> roe:checklist '/eval{?RO}' .`,
			expected: "/eval{?RO}",
		},
		{
			name:     "long literal",
			doc:      "<> roe:checklist \"\"\"\n  /eval{?RO}\n\"\"\" .",
			expected: "/eval{?RO}",
		},
		{
			name:     "escaped quote",
			doc:      `<> roe:checklist "/eval\"x\"{?RO}" .`,
			expected: `/eval"x"{?RO}`,
		},
		{
			name:     "newline between predicate and object",
			doc:      "<> roe:checklist\n\t\"/eval{?RO}\" .",
			expected: "/eval{?RO}",
		},
		{
			name:     "generated from prefix table",
			doc:      rdfns.TurtlePrefixes() + `<> roe:checklist "/eval{?RO}" .`,
			expected: "/eval{?RO}",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			template, err := ExtractChecklistTemplate(test.doc)
			require.NoError(t, err)
			require.Equal(t, test.expected, template)
		})
	}
}

func TestExtractChecklistTemplateNotFound(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "html page", doc: "<html><body>roe:checklist</body></html>"},
		{name: "other predicates only", doc: `<> roe:trafficlight_json "/tl{?RO}" .`},
		{name: "empty literal", doc: `<> roe:checklist "" .`},
		{name: "whitespace literal", doc: `<> roe:checklist "   " .`},
		{name: "longer prefix name", doc: `<> xroe:checklist "/eval{?RO}" .`},
		{name: "longer local name", doc: `<> roe:checklists "/eval{?RO}" .`},
		{
			name: "roe bound elsewhere",
			doc: `@prefix roe: <http://example.org/not-evaluate/> .
<> roe:checklist "/eval{?RO}" .`,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractChecklistTemplate(test.doc)
			require.ErrorIs(t, err, ErrTemplateNotFound)
		})
	}
}

func TestExtractChecklistTemplateSkipsEmpty(t *testing.T) {
	doc := `<> roe:checklist "" .
<http://example.org/other> roe:checklist "/eval{?RO}" .`
	template, err := ExtractChecklistTemplate(doc)
	require.NoError(t, err)
	require.Equal(t, "/eval{?RO}", template)
}

func TestDecodeEscapes(t *testing.T) {
	testCases := []struct {
		literal  string
		expected string
	}{
		{literal: `/evaluate/checklist{?RO,minim}`, expected: `/evaluate/checklist{?RO,minim}`},
		{literal: `a\"b\'c\\d`, expected: `a"b'c\d`},
		{literal: `tab\tnl\ncr\rbs\bff\f`, expected: "tab\tnl\ncr\rbs\bff\f"},
		{literal: `/evaluate\u0020x`, expected: "/evaluate x"},
		{literal: `\U0001F600`, expected: "\U0001F600"},
		{literal: `\u0041`, expected: `A`},
		{literal: `\\u0041`, expected: `\u0041`},
		{literal: `\UFFFFFFFF\q`, expected: `\UFFFFFFFF\q`},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, decodeEscapes(test.literal), test.literal)
	}

	template, err := ExtractChecklistTemplate(`@prefix roe: <http://purl.org/ro/service/evaluate/> .
<> roe:checklist "\u002Fevaluate/checklist{?RO}" .`)
	require.NoError(t, err)
	require.Equal(t, "/evaluate/checklist{?RO}", template)
}
