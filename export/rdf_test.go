package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/export"
	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

func exportFixture() (*graph.Graph, *graph.Namespaces) {
	g := graph.New()
	ns := graph.NewNamespaces()
	ns.Bind("lkd", "http://example.org/lkd/")
	ns.Bind("rdfs", "http://www.w3.org/2000/01/rdf-schema#")
	ns.Bind("owl", "http://www.w3.org/2002/07/owl#")
	return g, ns
}

func TestExportTurtle(t *testing.T) {
	g, ns := exportFixture()
	work := graph.IRI("http://example.org/lkd/Work")
	g.Assert(work, graph.IRI(vocabulary.RdfType), graph.IRI(vocabulary.OwlClass))
	g.Assert(work, graph.IRI(vocabulary.RdfsLabel), graph.NewLangLiteral("teos", "fi"))
	g.Assert(work, graph.IRI(vocabulary.RdfsLabel), graph.NewLangLiteral("verk", "sv"))

	output, err := export.NewExporter(g, ns).Export(export.FormatTurtle)
	require.NoError(t, err)

	assert.Contains(t, output, "@prefix lkd: <http://example.org/lkd/> .")
	assert.Contains(t, output, "lkd:Work")
	assert.Contains(t, output, "a owl:Class")
	assert.Contains(t, output, `"teos"@fi, "verk"@sv`)
	assert.True(t, strings.Contains(output, " .\n"), "subject blocks terminate with a dot")
}

func TestExportTurtleInlinesUnions(t *testing.T) {
	g, ns := exportFixture()
	prop := graph.IRI("http://example.org/lkd/hasPart")

	union := graph.NewBlankNode()
	g.Assert(union, graph.IRI(vocabulary.RdfType), graph.IRI(vocabulary.OwlClass))
	g.Assert(union, graph.IRI(vocabulary.OwlUnionOf), g.NewList([]graph.Term{
		graph.IRI("http://example.org/lkd/Work"),
		graph.IRI("http://example.org/lkd/Agent"),
	}))
	g.Assert(prop, graph.IRI(vocabulary.RdfsDomain), union)

	output, err := export.NewExporter(g, ns).Export(export.FormatTurtle)
	require.NoError(t, err)

	assert.Contains(t, output, "owl:unionOf ( lkd:Work lkd:Agent )")
	assert.NotContains(t, output, "22-rdf-syntax-ns#first", "collection nodes are rendered inline only")
	assert.NotContains(t, output, "22-rdf-syntax-ns#rest")
}

func TestExportNTriples(t *testing.T) {
	g, ns := exportFixture()
	work := graph.IRI("http://example.org/lkd/Work")
	g.Assert(work, graph.IRI(vocabulary.RdfType), graph.IRI(vocabulary.OwlClass))
	g.Assert(work, graph.IRI(vocabulary.RdfsLabel), graph.NewLangLiteral("teos", "fi"))

	output, err := export.NewExporter(g, ns).Export(export.FormatNTriples)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, " ."), "N-Triples line should end with ' .': %s", line)
		assert.True(t, strings.HasPrefix(line, "<http://example.org/lkd/Work>"))
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	g, ns := exportFixture()
	_, err := export.NewExporter(g, ns).Export(export.Format("jsonld"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	g, ns := exportFixture()
	g.Assert(graph.IRI("http://example.org/lkd/Work"),
		graph.IRI(vocabulary.RdfType), graph.IRI(vocabulary.OwlClass))

	path := filepath.Join(t.TempDir(), "vocab.ttl")
	require.NoError(t, export.NewExporter(g, ns).WriteFile(path, export.FormatTurtle))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lkd:Work")

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// Published artifacts are world-readable, not CreateTemp's 0600.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
