package compiler

import (
	"fmt"
	"strings"

	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// assertMapping validates and asserts a cross-vocabulary mapping triple.
//
// The relation token must be a member of the target's closed enumeration;
// an empty token is accepted silently. Class/non-class compatibility between
// the local entity and the external target is a softer tier: a mismatch is
// recorded as an advisory finding, never a failure.
func (c *Compiler) assertMapping(subject graph.Term, target vocabulary.MappingTarget, relToken, targetRef string) error {
	if relToken == "" {
		return nil
	}

	relation, ok := vocabulary.RelationIRI(target, relToken)
	if !ok {
		return fmt.Errorf("%w: mapping from %s to %s had value %q (allowed: %s)",
			ErrUnexpectedMapping, subject, target, relToken,
			strings.Join(vocabulary.AllowedRelations(target), ", "))
	}
	if targetRef == "" {
		return fmt.Errorf("mapping from %s to %s: relation %q given without a target identifier",
			subject, target, relToken)
	}

	targetIRI, err := c.ns.Expand(targetRef)
	if err != nil {
		return fmt.Errorf("mapping from %s to %s: %w", subject, target, err)
	}

	g := c.g
	g.Assert(subject, graph.IRI(relation), targetIRI)

	// Type compatibility, advisory only. Term-list references are a
	// recognized exception: controlled terms are mapped from classes
	// without being classes themselves.
	if vocabulary.IsTermListReference(string(targetIRI)) {
		return nil
	}
	localIsClass := g.Has(graph.Triple{
		Subject:   subject,
		Predicate: graph.IRI(vocabulary.RdfType),
		Object:    graph.IRI(vocabulary.OwlClass),
	})
	targetIsClass := vocabulary.IsClassReference(string(targetIRI))
	if localIsClass != targetIsClass {
		c.advise("mapping-compat", subject,
			fmt.Sprintf("%s mapping target %s does not match the entity's class/property kind",
				target, c.ns.Compact(targetIRI)))
	}
	return nil
}
