package release

import (
	"strings"
	"time"

	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// InjectVersionMetadata stamps ontology-level version metadata onto the
// ontology subject:
//
//   - dct:issued is asserted with today's date, but only when a version is
//     supplied and no issued triple exists yet (the overlay may carry one),
//   - owl:versionIRI and owl:versionInfo are replaced whenever a version is
//     supplied (the versionIRI appends the dashed version to the publishing
//     base URL),
//   - owl:priorVersion is replaced whenever a prior version is supplied,
//   - dct:modified is replaced with the current UTC timestamp on every run.
func InjectVersionMetadata(g *graph.Graph, ontology graph.IRI, publishingURL string, version, prior *Version, now time.Time) {
	now = now.UTC().Truncate(time.Second)
	base := strings.TrimSuffix(publishingURL, "/") + "/"

	if version != nil {
		if !g.HasSubjectPredicate(ontology, graph.IRI(vocabulary.DctIssued)) {
			g.Assert(ontology, graph.IRI(vocabulary.DctIssued),
				graph.NewTypedLiteral(now.Format("2006-01-02"), graph.IRI(vocabulary.XsdDate)))
		}

		g.RemoveSubjectPredicate(ontology, graph.IRI(vocabulary.OwlVersionIRI))
		g.Assert(ontology, graph.IRI(vocabulary.OwlVersionIRI),
			graph.IRI(base+version.Dashed()+"/"))

		g.RemoveSubjectPredicate(ontology, graph.IRI(vocabulary.OwlVersionInfo))
		g.Assert(ontology, graph.IRI(vocabulary.OwlVersionInfo),
			graph.NewLiteral(version.String()))
	}

	if prior != nil {
		g.RemoveSubjectPredicate(ontology, graph.IRI(vocabulary.OwlPriorVersion))
		g.Assert(ontology, graph.IRI(vocabulary.OwlPriorVersion),
			graph.IRI(base+prior.Dashed()+"/"))
	}

	g.RemoveSubjectPredicate(ontology, graph.IRI(vocabulary.DctModified))
	g.Assert(ontology, graph.IRI(vocabulary.DctModified),
		graph.NewTypedLiteral(now.Format("2006-01-02T15:04:05Z"), graph.IRI(vocabulary.XsdDateTime)))
}

// AttachDescriptions asserts the built release's per-language description
// fragments, converted to plain text, as dct:description literals on the
// ontology subject. A pre-existing overlay description that the new text
// extends (strict prefix) is removed in favor of the more specific one.
func AttachDescriptions(g *graph.Graph, ontology graph.IRI, rel Release, languages []string) error {
	for _, lang := range languages {
		text, err := rel.DescriptionText(lang)
		if err != nil {
			return err
		}
		if text == "" {
			continue
		}

		for _, existing := range g.Objects(ontology, graph.IRI(vocabulary.DctDescription)) {
			lit, ok := existing.(graph.Literal)
			if !ok || lit.Lang != lang {
				continue
			}
			if strings.HasPrefix(text, lit.Value) && len(text) > len(lit.Value) {
				obj := existing
				g.Remove(func(t graph.Triple) bool {
					return !(t.Subject == ontology &&
						t.Predicate == graph.IRI(vocabulary.DctDescription) &&
						t.Object == obj)
				})
			}
		}

		g.Assert(ontology, graph.IRI(vocabulary.DctDescription), graph.NewLangLiteral(text, lang))
	}
	return nil
}
