package compiler

import (
	"strings"

	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// retainedPredicates are the only predicates a deprecated entity keeps.
var retainedPredicates = map[graph.IRI]struct{}{
	graph.IRI(vocabulary.RdfsLabel):   {},
	graph.IRI(vocabulary.DctModified): {},
	graph.IRI(vocabulary.RdfType):     {},
}

// Deprecate transitions subject to the deprecated state:
//
//  1. every rdf:type triple is replaced by owl:DeprecatedClass (if the
//     subject was a class) or owl:DeprecatedProperty,
//  2. every triple outside the retained set {label, modified, type} is
//     stripped,
//  3. owl:deprecated true is added,
//  4. each replacement target is linked with dct:isReplacedBy.
//
// Deprecated is terminal; re-running the transition is idempotent because
// the removals are set-based.
func Deprecate(g *graph.Graph, subject graph.Term, replacedBy []graph.Term) {
	rdfType := graph.IRI(vocabulary.RdfType)

	wasClass := false
	for _, o := range g.Objects(subject, rdfType) {
		if o == graph.IRI(vocabulary.OwlClass) || o == graph.IRI(vocabulary.OwlDeprecatedClass) {
			wasClass = true
			break
		}
	}

	g.RemoveSubjectPredicate(subject, rdfType)
	if wasClass {
		g.Assert(subject, rdfType, graph.IRI(vocabulary.OwlDeprecatedClass))
	} else {
		g.Assert(subject, rdfType, graph.IRI(vocabulary.OwlDeprecatedProperty))
	}

	g.Remove(func(t graph.Triple) bool {
		if t.Subject != subject {
			return true
		}
		_, retained := retainedPredicates[t.Predicate]
		return retained
	})

	g.Assert(subject, graph.IRI(vocabulary.OwlDeprecated),
		graph.NewTypedLiteral("true", graph.IRI(vocabulary.XsdBoolean)))

	for _, target := range replacedBy {
		g.Assert(subject, graph.IRI(vocabulary.DctIsReplacedBy), target)
	}
}

// replacementTargets resolves the comma-separated replaced-by column.
func (c *Compiler) replacementTargets(cell string) ([]graph.Term, error) {
	if cell == "" {
		return nil, nil
	}
	var out []graph.Term
	for _, part := range strings.Split(cell, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		target, err := c.ns.Expand(item)
		if err != nil {
			return nil, err
		}
		out = append(out, target)
	}
	return out, nil
}
