package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNamespaces() *Namespaces {
	ns := NewNamespaces()
	ns.Bind("lkd", "http://example.org/lkd/")
	ns.Bind("skos", "http://www.w3.org/2004/02/skos/core#")
	ns.Bind("xsd", "http://www.w3.org/2001/XMLSchema#")
	return ns
}

func TestExpand(t *testing.T) {
	ns := testNamespaces()

	tests := []struct {
		name    string
		text    string
		want    IRI
		wantErr bool
	}{
		{
			name: "prefixed name",
			text: "skos:exactMatch",
			want: IRI("http://www.w3.org/2004/02/skos/core#exactMatch"),
		},
		{
			name: "absolute http IRI passes through",
			text: "http://id.loc.gov/ontologies/bibframe/Work",
			want: IRI("http://id.loc.gov/ontologies/bibframe/Work"),
		},
		{
			name: "absolute https IRI passes through",
			text: "https://example.org/x",
			want: IRI("https://example.org/x"),
		},
		{
			name:    "undefined prefix",
			text:    "nope:thing",
			wantErr: true,
		},
		{
			name:    "bare token without prefix",
			text:    "justaname",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ns.Expand(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUndefinedPrefix)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompact(t *testing.T) {
	ns := testNamespaces()

	assert.Equal(t, "lkd:Work", ns.Compact(IRI("http://example.org/lkd/Work")))
	assert.Equal(t, "skos:broadMatch", ns.Compact(IRI("http://www.w3.org/2004/02/skos/core#broadMatch")))
	assert.Equal(t, "<http://unbound.example/x>", ns.Compact(IRI("http://unbound.example/x")))
}

func TestCompactPrefersLongestBase(t *testing.T) {
	ns := NewNamespaces()
	ns.Bind("ex", "http://example.org/")
	ns.Bind("lkd", "http://example.org/lkd/")

	assert.Equal(t, "lkd:Work", ns.Compact(IRI("http://example.org/lkd/Work")))
}

func TestResolveTerm(t *testing.T) {
	ns := testNamespaces()

	tests := []struct {
		name string
		text string
		want Term
	}{
		{"angle-bracket IRI", "<http://example.org/x>", IRI("http://example.org/x")},
		{"prefixed name", "lkd:Work", IRI("http://example.org/lkd/Work")},
		{"plain literal", `"teos"`, NewLiteral("teos")},
		{"language-tagged literal", `"teos"@fi`, NewLangLiteral("teos", "fi")},
		{"typed literal, prefixed datatype", `"2024-01-01"^^xsd:date`,
			NewTypedLiteral("2024-01-01", IRI("http://www.w3.org/2001/XMLSchema#date"))},
		{"typed literal, bracketed datatype", `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`,
			NewTypedLiteral("1", IRI("http://www.w3.org/2001/XMLSchema#integer"))},
		{"blank node", "_:b1", BlankNode("b1")},
		{"escaped quotes", `"say \"hi\""`, NewLiteral(`say "hi"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ns.ResolveTerm(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTermErrors(t *testing.T) {
	ns := testNamespaces()

	for _, text := range []string{
		"",
		`"unterminated`,
		`"x"@`,
		`"x"^^nope:dt`,
		"nope:thing",
	} {
		_, err := ns.ResolveTerm(text)
		assert.Error(t, err, "ResolveTerm(%q) should fail", text)
	}
}
