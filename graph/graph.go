package graph

import (
	"github.com/c360studio/semvocab/vocabulary"
)

// Graph is an insertion-ordered set of triples. Re-asserting an existing
// triple is a no-op. The graph is a single-writer structure: the compiler
// mutates it sequentially and the validator reads it afterwards, so there
// is no internal locking.
type Graph struct {
	triples []Triple
	index   map[string]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]struct{})}
}

// Add asserts a triple. It returns false when the triple was already
// present.
func (g *Graph) Add(t Triple) bool {
	k := t.key()
	if _, ok := g.index[k]; ok {
		return false
	}
	g.index[k] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Assert is shorthand for Add with loose arguments.
func (g *Graph) Assert(s Term, p IRI, o Term) bool {
	return g.Add(Triple{Subject: s, Predicate: p, Object: o})
}

// Has reports whether the exact triple is present.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.index[t.key()]
	return ok
}

// HasSubjectPredicate reports whether any triple with the given subject and
// predicate exists.
func (g *Graph) HasSubjectPredicate(s Term, p IRI) bool {
	for _, t := range g.triples {
		if t.Subject == s && t.Predicate == p {
			return true
		}
	}
	return false
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns the triples in insertion order. The slice must not be
// mutated by the caller.
func (g *Graph) Triples() []Triple {
	return g.triples
}

// Objects returns the objects of all triples matching subject and
// predicate, in insertion order.
func (g *Graph) Objects(s Term, p IRI) []Term {
	var out []Term
	for _, t := range g.triples {
		if t.Subject == s && t.Predicate == p {
			out = append(out, t.Object)
		}
	}
	return out
}

// Subjects returns the distinct subjects of all triples matching predicate
// and object, in insertion order.
func (g *Graph) Subjects(p IRI, o Term) []Term {
	var out []Term
	seen := make(map[string]struct{})
	for _, t := range g.triples {
		if t.Predicate == p && t.Object == o {
			if _, ok := seen[t.Subject.String()]; ok {
				continue
			}
			seen[t.Subject.String()] = struct{}{}
			out = append(out, t.Subject)
		}
	}
	return out
}

// ForSubject returns every triple with the given subject.
func (g *Graph) ForSubject(s Term) []Triple {
	var out []Triple
	for _, t := range g.triples {
		if t.Subject == s {
			out = append(out, t)
		}
	}
	return out
}

// SubjectSet returns the distinct subjects in insertion order.
func (g *Graph) SubjectSet() []Term {
	var out []Term
	seen := make(map[string]struct{})
	for _, t := range g.triples {
		if _, ok := seen[t.Subject.String()]; ok {
			continue
		}
		seen[t.Subject.String()] = struct{}{}
		out = append(out, t.Subject)
	}
	return out
}

// Remove deletes every triple for which keep returns false and returns the
// number removed. It builds a fresh slice rather than deleting in place, so
// callers may pass predicates derived from the graph's own contents.
func (g *Graph) Remove(keep func(Triple) bool) int {
	kept := g.triples[:0:0]
	removed := 0
	for _, t := range g.triples {
		if keep(t) {
			kept = append(kept, t)
		} else {
			delete(g.index, t.key())
			removed++
		}
	}
	g.triples = kept
	return removed
}

// RemoveSubjectPredicate deletes all triples with the given subject and
// predicate, returning the number removed. Used for replace-style updates
// such as version metadata.
func (g *Graph) RemoveSubjectPredicate(s Term, p IRI) int {
	return g.Remove(func(t Triple) bool {
		return !(t.Subject == s && t.Predicate == p)
	})
}

// Merge adds every triple of other into g.
func (g *Graph) Merge(other *Graph) {
	for _, t := range other.triples {
		g.Add(t)
	}
}

// NewList materializes an ordered RDF collection for the given items and
// returns its head. An empty item list yields rdf:nil.
func (g *Graph) NewList(items []Term) Term {
	if len(items) == 0 {
		return IRI(vocabulary.RdfNil)
	}
	head := NewBlankNode()
	node := head
	for i, item := range items {
		g.Assert(node, IRI(vocabulary.RdfFirst), item)
		if i == len(items)-1 {
			g.Assert(node, IRI(vocabulary.RdfRest), IRI(vocabulary.RdfNil))
			break
		}
		next := NewBlankNode()
		g.Assert(node, IRI(vocabulary.RdfRest), next)
		node = next
	}
	return head
}

// ListItems walks an RDF collection from its head and returns the items in
// order. A malformed list (missing rdf:first or rdf:rest) ends the walk at
// the last well-formed node.
func (g *Graph) ListItems(head Term) []Term {
	var out []Term
	node := head
	for {
		if iri, ok := node.(IRI); ok && string(iri) == vocabulary.RdfNil {
			return out
		}
		firsts := g.Objects(node, IRI(vocabulary.RdfFirst))
		if len(firsts) == 0 {
			return out
		}
		out = append(out, firsts[0])
		rests := g.Objects(node, IRI(vocabulary.RdfRest))
		if len(rests) == 0 {
			return out
		}
		node = rests[0]
	}
}

// IsListHead reports whether the term heads an RDF collection in g.
func (g *Graph) IsListHead(t Term) bool {
	if iri, ok := t.(IRI); ok {
		return string(iri) == vocabulary.RdfNil
	}
	return g.HasSubjectPredicate(t, IRI(vocabulary.RdfFirst))
}
