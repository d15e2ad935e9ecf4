package compiler

import (
	"fmt"
	"strings"

	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// ExpandComplex asserts (subject, predicate, value) where the cell value may
// be a single term or a bracketed union expression such as "[a:X, a:Y]".
//
// A union cell materializes an anonymous node typed owl:Class carrying an
// ordered owl:unionOf collection of the resolved members. Unions are never
// nested and never have fewer than two members.
func ExpandComplex(g *graph.Graph, ns *graph.Namespaces, subject graph.Term, predicate graph.IRI, cell string) error {
	if !strings.HasPrefix(cell, "[") {
		object, err := ns.ResolveTerm(cell)
		if err != nil {
			return fmt.Errorf("resolving %s %s %q: %w", subject, predicate, cell, err)
		}
		g.Assert(subject, predicate, object)
		return nil
	}

	if !strings.HasSuffix(cell, "]") {
		return fmt.Errorf("%w: union start without union end in %s %s %q",
			ErrMalformedUnion, subject, predicate, cell)
	}
	interior := strings.TrimSpace(cell[1 : len(cell)-1])
	if strings.ContainsAny(interior, "[]") {
		return fmt.Errorf("%w: nested brackets are not supported in %s %s %q",
			ErrMalformedUnion, subject, predicate, cell)
	}

	var members []graph.Term
	for _, part := range strings.Split(interior, ",") {
		item := strings.Trim(part, " \t{}")
		if item == "" {
			continue
		}
		member, err := ns.Expand(item)
		if err != nil {
			return fmt.Errorf("resolving union member %q in %s %s %q: %w",
				item, subject, predicate, cell, err)
		}
		members = append(members, member)
	}
	if len(members) < 2 {
		return fmt.Errorf("%w: expanded union had fewer than two members in %s %s %q",
			ErrMalformedUnion, subject, predicate, cell)
	}

	union := graph.NewBlankNode()
	g.Assert(union, graph.IRI(vocabulary.RdfType), graph.IRI(vocabulary.OwlClass))
	g.Assert(union, graph.IRI(vocabulary.OwlUnionOf), g.NewList(members))
	g.Assert(subject, predicate, union)
	return nil
}
