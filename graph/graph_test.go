package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/vocabulary"
)

func TestAddIsIdempotent(t *testing.T) {
	g := New()
	tr := Triple{
		Subject:   IRI("http://example.org/lkd/Work"),
		Predicate: IRI(vocabulary.RdfType),
		Object:    IRI(vocabulary.OwlClass),
	}

	assert.True(t, g.Add(tr))
	assert.False(t, g.Add(tr), "re-asserting the same triple must be a no-op")
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(tr))
}

func TestAddDistinguishesLiteralShapes(t *testing.T) {
	g := New()
	s := IRI("http://example.org/lkd/Work")
	p := IRI(vocabulary.RdfsLabel)

	g.Assert(s, p, NewLiteral("teos"))
	g.Assert(s, p, NewLangLiteral("teos", "fi"))
	g.Assert(s, p, NewTypedLiteral("teos", IRI(vocabulary.XsdDate)))

	assert.Equal(t, 3, g.Len(), "plain, tagged and typed literals are distinct triples")
}

func TestInsertionOrderPreserved(t *testing.T) {
	g := New()
	s := IRI("http://example.org/lkd/Work")

	g.Assert(s, IRI("http://example.org/p1"), NewLiteral("a"))
	g.Assert(s, IRI("http://example.org/p2"), NewLiteral("b"))
	g.Assert(s, IRI("http://example.org/p1"), NewLiteral("c"))

	triples := g.Triples()
	require.Len(t, triples, 3)
	assert.Equal(t, NewLiteral("a"), triples[0].Object.(Literal))
	assert.Equal(t, NewLiteral("b"), triples[1].Object.(Literal))
	assert.Equal(t, NewLiteral("c"), triples[2].Object.(Literal))
}

func TestObjectsAndSubjects(t *testing.T) {
	g := New()
	s := IRI("http://example.org/lkd/expression")
	p := IRI(vocabulary.RdfsDomain)
	o := IRI("http://example.org/lkd/Work")

	g.Assert(s, p, o)
	g.Assert(s, p, IRI("http://example.org/lkd/Agent"))

	objects := g.Objects(s, p)
	require.Len(t, objects, 2)
	assert.Equal(t, Term(o), objects[0])

	subjects := g.Subjects(p, o)
	require.Len(t, subjects, 1)
	assert.Equal(t, Term(s), subjects[0])
}

func TestRemoveSubjectPredicate(t *testing.T) {
	g := New()
	s := IRI("http://example.org/lkd/")
	p := IRI(vocabulary.DctModified)

	g.Assert(s, p, NewLiteral("2024-01-01"))
	g.Assert(s, p, NewLiteral("2024-06-01"))
	g.Assert(s, IRI(vocabulary.DctIssued), NewLiteral("2023-01-01"))

	removed := g.RemoveSubjectPredicate(s, p)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, g.Len())
	assert.False(t, g.HasSubjectPredicate(s, p))
	assert.True(t, g.HasSubjectPredicate(s, IRI(vocabulary.DctIssued)))
}

func TestRemoveUpdatesIndex(t *testing.T) {
	g := New()
	s := IRI("http://example.org/lkd/old")
	tr := Triple{Subject: s, Predicate: IRI(vocabulary.RdfsComment), Object: NewLiteral("gone")}
	g.Add(tr)

	g.Remove(func(t Triple) bool { return t.Subject != s })
	assert.False(t, g.Has(tr))

	// The removed triple can be re-asserted.
	assert.True(t, g.Add(tr))
}

func TestNewListBuildsOrderedCollection(t *testing.T) {
	g := New()
	items := []Term{
		IRI("http://example.org/lkd/Work"),
		IRI("http://example.org/lkd/Expression"),
		IRI("http://example.org/lkd/Manifestation"),
	}

	head := g.NewList(items)
	require.IsType(t, BlankNode(""), head)

	got := g.ListItems(head)
	require.Len(t, got, 3)
	assert.Equal(t, items, got)

	// Three nodes, each with rdf:first and rdf:rest.
	assert.Equal(t, 6, g.Len())
	assert.True(t, g.IsListHead(head))
}

func TestNewListEmpty(t *testing.T) {
	g := New()
	head := g.NewList(nil)
	assert.Equal(t, Term(IRI(vocabulary.RdfNil)), head)
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.ListItems(head))
}

func TestMerge(t *testing.T) {
	a := New()
	b := New()
	tr := Triple{
		Subject:   IRI("http://example.org/lkd/Work"),
		Predicate: IRI(vocabulary.RdfType),
		Object:    IRI(vocabulary.OwlClass),
	}
	a.Add(tr)
	b.Add(tr)
	b.Assert(IRI("http://example.org/lkd/Work"), IRI(vocabulary.RdfsLabel), NewLangLiteral("teos", "fi"))

	a.Merge(b)
	assert.Equal(t, 2, a.Len())
}

func TestBlankNodeLabelsAreFresh(t *testing.T) {
	a := NewBlankNode()
	b := NewBlankNode()
	assert.NotEqual(t, a, b)
	assert.Contains(t, a.String(), "_:b")
}
