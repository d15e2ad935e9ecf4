package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

const publishingURL = "http://schema.finto.fi/lkd/"

var (
	ontology = graph.IRI("http://example.org/lkd/")
	buildTS  = time.Date(2024, 2, 19, 12, 30, 45, 123456789, time.UTC)
)

func TestInjectVersionMetadata(t *testing.T) {
	g := graph.New()
	version := Version{1, 1, 0}
	prior := Version{1, 0, 0}

	InjectVersionMetadata(g, ontology, publishingURL, &version, &prior, buildTS)

	issued := g.Objects(ontology, graph.IRI(vocabulary.DctIssued))
	require.Len(t, issued, 1)
	assert.Equal(t, graph.Term(graph.NewTypedLiteral("2024-02-19", graph.IRI(vocabulary.XsdDate))), issued[0])

	versionIRI := g.Objects(ontology, graph.IRI(vocabulary.OwlVersionIRI))
	require.Len(t, versionIRI, 1)
	assert.Equal(t, graph.Term(graph.IRI("http://schema.finto.fi/lkd/1-1-0/")), versionIRI[0])

	info := g.Objects(ontology, graph.IRI(vocabulary.OwlVersionInfo))
	require.Len(t, info, 1)
	assert.Equal(t, graph.Term(graph.NewLiteral("1.1.0")), info[0])

	priorIRI := g.Objects(ontology, graph.IRI(vocabulary.OwlPriorVersion))
	require.Len(t, priorIRI, 1)
	assert.Equal(t, graph.Term(graph.IRI("http://schema.finto.fi/lkd/1-0-0/")), priorIRI[0])

	modified := g.Objects(ontology, graph.IRI(vocabulary.DctModified))
	require.Len(t, modified, 1)
	assert.Equal(t, graph.Term(graph.NewTypedLiteral("2024-02-19T12:30:45Z", graph.IRI(vocabulary.XsdDateTime))), modified[0])
}

func TestInjectVersionMetadataKeepsOverlayIssued(t *testing.T) {
	g := graph.New()
	overlayIssued := graph.NewTypedLiteral("2023-05-08", graph.IRI(vocabulary.XsdDate))
	g.Assert(ontology, graph.IRI(vocabulary.DctIssued), overlayIssued)

	version := Version{1, 1, 0}
	InjectVersionMetadata(g, ontology, publishingURL, &version, nil, buildTS)

	issued := g.Objects(ontology, graph.IRI(vocabulary.DctIssued))
	require.Len(t, issued, 1)
	assert.Equal(t, graph.Term(overlayIssued), issued[0], "an existing issued date is never replaced")
}

func TestInjectVersionMetadataReplacesStaleValues(t *testing.T) {
	g := graph.New()
	g.Assert(ontology, graph.IRI(vocabulary.OwlVersionIRI), graph.IRI("http://schema.finto.fi/lkd/1-0-0/"))
	g.Assert(ontology, graph.IRI(vocabulary.OwlVersionInfo), graph.NewLiteral("1.0.0"))
	g.Assert(ontology, graph.IRI(vocabulary.DctModified), graph.NewLiteral("stale"))

	version := Version{1, 1, 0}
	InjectVersionMetadata(g, ontology, publishingURL, &version, nil, buildTS)

	assert.Equal(t, []graph.Term{graph.IRI("http://schema.finto.fi/lkd/1-1-0/")},
		g.Objects(ontology, graph.IRI(vocabulary.OwlVersionIRI)))
	assert.Equal(t, []graph.Term{graph.Literal{Value: "1.1.0"}},
		g.Objects(ontology, graph.IRI(vocabulary.OwlVersionInfo)))
	assert.Len(t, g.Objects(ontology, graph.IRI(vocabulary.DctModified)), 1)
}

func TestInjectVersionMetadataWithoutVersion(t *testing.T) {
	g := graph.New()
	InjectVersionMetadata(g, ontology, publishingURL, nil, nil, buildTS)

	assert.False(t, g.HasSubjectPredicate(ontology, graph.IRI(vocabulary.DctIssued)))
	assert.False(t, g.HasSubjectPredicate(ontology, graph.IRI(vocabulary.OwlVersionIRI)))
	assert.False(t, g.HasSubjectPredicate(ontology, graph.IRI(vocabulary.OwlVersionInfo)))
	assert.False(t, g.HasSubjectPredicate(ontology, graph.IRI(vocabulary.OwlPriorVersion)))
	assert.True(t, g.HasSubjectPredicate(ontology, graph.IRI(vocabulary.DctModified)),
		"the modification timestamp is stamped on every run")
}

func TestAttachDescriptions(t *testing.T) {
	g := graph.New()
	rel := Release{Descriptions: map[string]string{
		"fi": "<p>Sanasto kuvaa kirjastoaineistoja. Uudet termit lisätty.</p>",
	}}

	// The overlay carries a shorter description the generated one extends.
	g.Assert(ontology, graph.IRI(vocabulary.DctDescription),
		graph.NewLangLiteral("Sanasto kuvaa kirjastoaineistoja.", "fi"))
	g.Assert(ontology, graph.IRI(vocabulary.DctDescription),
		graph.NewLangLiteral("Vokabulären beskriver biblioteksmaterial.", "sv"))

	require.NoError(t, AttachDescriptions(g, ontology, rel, []string{"fi", "sv"}))

	descriptions := g.Objects(ontology, graph.IRI(vocabulary.DctDescription))
	require.Len(t, descriptions, 2)
	assert.Contains(t, descriptions, graph.Term(graph.NewLangLiteral(
		"Sanasto kuvaa kirjastoaineistoja. Uudet termit lisätty.", "fi")))
	assert.Contains(t, descriptions, graph.Term(graph.NewLangLiteral(
		"Vokabulären beskriver biblioteksmaterial.", "sv")),
		"other languages' overlay descriptions are untouched")
}
