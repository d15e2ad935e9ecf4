package compiler

import (
	"context"
	"strings"

	serrors "github.com/c360studio/semstreams/pkg/errs"
	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// LabelResolver resolves a human-readable label for an external IRI.
// Implemented by fetch.Client.
type LabelResolver interface {
	Label(ctx context.Context, iri string) (string, error)
}

// mappingPredicates are the predicates whose objects point at external
// vocabularies and therefore want resolvable labels.
var mappingPredicates = []graph.IRI{
	graph.IRI(vocabulary.SkosExactMatch),
	graph.IRI(vocabulary.SkosCloseMatch),
	graph.IRI(vocabulary.SkosBroadMatch),
	graph.IRI(vocabulary.SkosNarrowMatch),
}

// ResolveExternalLabels fetches a label for every external mapping target
// in the graph and asserts it as rdfs:label on the target. A target whose
// document yields no label is an advisory finding; a failed fetch is fatal
// to the run.
func (c *Compiler) ResolveExternalLabels(ctx context.Context, resolver LabelResolver) error {
	managed := c.cfg.Vocabulary.Namespace
	seen := make(map[graph.IRI]struct{})

	for _, t := range c.g.Triples() {
		if !isMappingPredicate(t.Predicate) {
			continue
		}
		target, ok := t.Object.(graph.IRI)
		if !ok || strings.HasPrefix(string(target), managed) {
			continue
		}
		if _, done := seen[target]; done {
			continue
		}
		seen[target] = struct{}{}

		label, err := resolver.Label(ctx, string(target))
		if err != nil {
			return serrors.WrapFatal(err, "compiler", "ResolveExternalLabels", "fetching external reference")
		}
		if label == "" {
			c.advise("external-label", target, "no label found in fetched reference document")
			continue
		}
		c.g.Assert(target, graph.IRI(vocabulary.RdfsLabel), graph.NewLiteral(label))
	}
	return nil
}

func isMappingPredicate(p graph.IRI) bool {
	for _, mp := range mappingPredicates {
		if p == mp {
			return true
		}
	}
	return false
}
