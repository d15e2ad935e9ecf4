package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationIRI(t *testing.T) {
	for _, target := range []MappingTarget{TargetBibframe, TargetRDA} {
		iri, ok := RelationIRI(target, "skos:exactMatch")
		assert.True(t, ok)
		assert.Equal(t, SkosExactMatch, iri)

		_, ok = RelationIRI(target, "skos:relatedMatch")
		assert.False(t, ok, "%s must reject tokens outside the enumeration", target)

		_, ok = RelationIRI(target, "exactMatch")
		assert.False(t, ok, "%s must reject unprefixed tokens", target)
	}
}

func TestAllowedRelations(t *testing.T) {
	allowed := AllowedRelations(TargetBibframe)
	assert.Len(t, allowed, 4)
	assert.Contains(t, allowed, "skos:narrowMatch")
}

func TestMappingTargetString(t *testing.T) {
	assert.Equal(t, "BIBFRAME", TargetBibframe.String())
	assert.Equal(t, "RDA", TargetRDA.String())
}

func TestIsClassReference(t *testing.T) {
	tests := []struct {
		iri  string
		want bool
	}{
		{"http://id.loc.gov/ontologies/bibframe/Work", true},
		{"http://id.loc.gov/ontologies/bibframe/title", false},
		{"http://rdaregistry.info/Elements/c/C10001", true},
		{"http://rdaregistry.info/Elements/w/P10072", true},
		{"http://example.org/ns#Agent", true},
		{"http://example.org/ns#hasAgent", false},
		{"http://example.org/ns#Äänite", true},
		{"http://example.org/ns#äänite", false},
		{"http://example.org/", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsClassReference(tt.iri), "IsClassReference(%q)", tt.iri)
	}
}

func TestIsTermListReference(t *testing.T) {
	assert.True(t, IsTermListReference("http://rdaregistry.info/termList/RDAContentType/1020"))
	assert.False(t, IsTermListReference("http://rdaregistry.info/Elements/c/C10001"))
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "Work", LocalName("http://id.loc.gov/ontologies/bibframe/Work"))
	assert.Equal(t, "exactMatch", LocalName("http://www.w3.org/2004/02/skos/core#exactMatch"))
	assert.Equal(t, "ns", LocalName("http://example.org/ns/"))
}
