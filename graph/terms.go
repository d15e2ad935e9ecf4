// Package graph implements the triple store the vocabulary compiler builds
// into: terms, set-semantic triple assertion, pattern lookups, RDF
// collections, and a namespace table for prefixed-name resolution.
package graph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Term is a node in the graph: an IRI, a blank (anonymous) node, or a
// literal. Subjects are IRIs or blank nodes; predicates are always IRIs.
type Term interface {
	// String renders the term in N-Triples syntax, used in diagnostics
	// and as the uniqueness key for set semantics.
	String() string

	term()
}

// IRI is an absolute IRI reference.
type IRI string

func (i IRI) String() string { return "<" + string(i) + ">" }
func (IRI) term()            {}

// BlankNode is an anonymous node. Fresh nodes get UUID-derived labels so
// they never collide with labels read from an overlay file.
type BlankNode string

func (b BlankNode) String() string { return "_:" + string(b) }
func (BlankNode) term()            {}

// NewBlankNode returns a blank node with a fresh label.
func NewBlankNode() BlankNode {
	return BlankNode("b" + strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Literal is a string value with an optional language tag or datatype IRI.
// At most one of Lang and Datatype is set.
type Literal struct {
	Value    string
	Lang     string
	Datatype IRI
}

func (l Literal) String() string {
	s := `"` + escapeLiteral(l.Value) + `"`
	if l.Lang != "" {
		return s + "@" + l.Lang
	}
	if l.Datatype != "" {
		return s + "^^" + l.Datatype.String()
	}
	return s
}

func (Literal) term() {}

// NewLiteral returns a plain literal.
func NewLiteral(value string) Literal {
	return Literal{Value: value}
}

// NewLangLiteral returns a language-tagged literal.
func NewLangLiteral(value, lang string) Literal {
	return Literal{Value: value, Lang: lang}
}

// NewTypedLiteral returns a datatyped literal.
func NewTypedLiteral(value string, datatype IRI) Literal {
	return Literal{Value: value, Datatype: datatype}
}

// Triple is a single subject-predicate-object assertion.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

// String renders the triple in N-Triples syntax for error messages.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

func (t Triple) key() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String()
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
