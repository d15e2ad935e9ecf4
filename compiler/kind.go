package compiler

import (
	"errors"
	"fmt"

	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// Structural errors raised during row processing. All of them abort the run
// before any output is produced.
var (
	ErrUnexpectedType    = errors.New("unexpected type value")
	ErrUnexpectedMapping = errors.New("unexpected mapping value")
	ErrRangeMismatch     = errors.New("range mismatch for datatype property")
	ErrMalformedUnion    = errors.New("malformed union")
)

// EntityKind is the closed enumeration of entity type tokens.
type EntityKind int

const (
	KindClass EntityKind = iota
	KindObjectProperty
	KindSymmetricProperty
	KindDatatypeProperty
)

// ParseKind maps a type-column token to its EntityKind. Tokens outside the
// enumeration are a structural error.
func ParseKind(token string) (EntityKind, error) {
	switch token {
	case "owl:Class":
		return KindClass, nil
	case "owl:ObjectProperty":
		return KindObjectProperty, nil
	case "owl:SymmetricProperty":
		return KindSymmetricProperty, nil
	case "owl:DatatypeProperty":
		return KindDatatypeProperty, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedType, token)
	}
}

// AssignType asserts the rdf:type triples for subject and fills the default
// range where none was asserted.
//
// Ordering contract: the domain and range columns of the same row must have
// been processed before this runs, because the default-range rule is
// conditional on a range triple already existing for the subject.
func AssignType(g *graph.Graph, subject graph.Term, kind EntityKind) error {
	rdfType := graph.IRI(vocabulary.RdfType)
	rdfsRange := graph.IRI(vocabulary.RdfsRange)

	switch kind {
	case KindClass:
		g.Assert(subject, rdfType, graph.IRI(vocabulary.OwlClass))
		return nil

	case KindObjectProperty, KindSymmetricProperty:
		if kind == KindSymmetricProperty {
			g.Assert(subject, rdfType, graph.IRI(vocabulary.OwlSymmetricProperty))
		}
		g.Assert(subject, rdfType, graph.IRI(vocabulary.OwlObjectProperty))
		if !g.HasSubjectPredicate(subject, rdfsRange) {
			g.Assert(subject, rdfsRange, graph.IRI(vocabulary.RdfsResource))
		}
		return nil

	case KindDatatypeProperty:
		g.Assert(subject, rdfType, graph.IRI(vocabulary.OwlDatatypeProperty))
		ranges := g.Objects(subject, rdfsRange)
		for _, r := range ranges {
			if r != graph.IRI(vocabulary.RdfsLiteral) {
				return fmt.Errorf("%w: %s has range %s (expected rdfs:Literal)",
					ErrRangeMismatch, subject, r)
			}
		}
		if len(ranges) == 0 {
			g.Assert(subject, rdfsRange, graph.IRI(vocabulary.RdfsLiteral))
		}
		return nil

	default:
		return fmt.Errorf("%w: kind %d", ErrUnexpectedType, kind)
	}
}
