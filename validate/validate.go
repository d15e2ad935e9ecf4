// Package validate runs the post-build consistency checks over the
// finished graph. Every check is advisory: findings are logged and
// collected, and the run always completes.
package validate

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// Finding is one advisory diagnostic. Subject is the entity's compact
// identifier.
type Finding struct {
	Check   string
	Subject string
	Message string
}

// Validator inspects the finished graph. Only entities inside Namespace are
// checked; everything else is ignored.
type Validator struct {
	Graph     *graph.Graph
	NS        *graph.Namespaces
	Namespace string

	// BuildingVersion enables the "(New)" marker check, which only makes
	// sense when a versioned release is being built.
	BuildingVersion bool

	Log *slog.Logger
}

// Run executes the full battery and returns the findings. Checks are
// independent: a finding never stops later checks.
func (v *Validator) Run() []Finding {
	if v.Log == nil {
		v.Log = slog.Default()
	}

	var findings []Finding
	report := func(check string, subject graph.IRI, format string, args ...any) {
		f := Finding{
			Check:   check,
			Subject: v.NS.Compact(subject),
			Message: fmt.Sprintf(format, args...),
		}
		findings = append(findings, f)
		v.Log.Warn("validation finding",
			slog.String("check", f.Check),
			slog.String("subject", f.Subject),
			slog.String("detail", f.Message))
	}

	for _, entity := range v.managedEntities() {
		v.checkLabel(entity, report)
		v.checkAmbiguousRelations(entity, report)
		v.checkDanglingReferences(entity, report)
		if v.BuildingVersion {
			v.checkNewMarker(entity, report)
		}
		v.checkDeprecatedReferenced(entity, report)
		v.checkNamingConvention(entity, report)
		v.checkPropertyValues(entity, report)
		v.checkAnnotationProperty(entity, report)
	}
	return findings
}

type reporter func(check string, subject graph.IRI, format string, args ...any)

// managedEntities returns the IRI subjects inside the managed namespace, in
// insertion order.
func (v *Validator) managedEntities() []graph.IRI {
	var out []graph.IRI
	for _, s := range v.Graph.SubjectSet() {
		iri, ok := s.(graph.IRI)
		if !ok {
			continue
		}
		// The ontology subject itself is metadata, not an entity.
		if string(iri) == v.Namespace {
			continue
		}
		if strings.HasPrefix(string(iri), v.Namespace) {
			out = append(out, iri)
		}
	}
	return out
}

func (v *Validator) checkLabel(entity graph.IRI, report reporter) {
	if len(v.Graph.Objects(entity, graph.IRI(vocabulary.RdfsLabel))) == 0 {
		report("missing-label", entity, "entity has no label")
	}
}

// checkAmbiguousRelations flags two different predicates holding between
// the same subject and object. The domain/range pair is a legitimate
// exception (a property may use one class as both).
func (v *Validator) checkAmbiguousRelations(entity graph.IRI, report reporter) {
	byObject := make(map[string][]graph.IRI)
	var order []string
	for _, t := range v.Graph.ForSubject(entity) {
		key := t.Object.String()
		if _, seen := byObject[key]; !seen {
			order = append(order, key)
		}
		byObject[key] = append(byObject[key], t.Predicate)
	}
	for _, key := range order {
		preds := dedupe(byObject[key])
		if len(preds) < 2 {
			continue
		}
		if len(preds) == 2 && isDomainRangePair(preds[0], preds[1]) {
			continue
		}
		names := make([]string, len(preds))
		for i, p := range preds {
			names[i] = v.NS.Compact(p)
		}
		report("ambiguous-relation", entity, "predicates %s share the object %s",
			strings.Join(names, ", "), key)
	}
}

// checkDanglingReferences flags object IRIs in the managed namespace that
// have no outgoing triples of their own.
func (v *Validator) checkDanglingReferences(entity graph.IRI, report reporter) {
	for _, t := range v.Graph.ForSubject(entity) {
		obj, ok := t.Object.(graph.IRI)
		if !ok || !strings.HasPrefix(string(obj), v.Namespace) || string(obj) == v.Namespace {
			continue
		}
		if len(v.Graph.ForSubject(obj)) == 0 {
			report("dangling-reference", entity, "references %s which has no triples of its own",
				v.NS.Compact(obj))
		}
	}
}

// checkNewMarker warns when a versioned build leaves an entity without any
// modification-history literal ending in " (New)".
func (v *Validator) checkNewMarker(entity graph.IRI, report reporter) {
	for _, o := range v.Graph.Objects(entity, graph.IRI(vocabulary.DctModified)) {
		if lit, ok := o.(graph.Literal); ok && strings.HasSuffix(lit.Value, " (New)") {
			return
		}
	}
	report("missing-new-marker", entity, "no modification note marks the entity as new")
}

// checkDeprecatedReferenced flags deprecated entities that still appear as
// the object of any triple.
func (v *Validator) checkDeprecatedReferenced(entity graph.IRI, report reporter) {
	if !isDeprecated(v.Graph, entity) {
		return
	}
	for _, t := range v.Graph.Triples() {
		if t.Object == graph.Term(entity) && t.Subject != graph.Term(entity) {
			report("deprecated-referenced", entity, "deprecated entity is referenced by %s",
				t.Subject)
			return
		}
	}
}

// checkNamingConvention enforces the case convention: class local names
// start uppercase, everything else lowercase.
func (v *Validator) checkNamingConvention(entity graph.IRI, report reporter) {
	local := strings.TrimPrefix(string(entity), v.Namespace)
	if local == "" {
		return
	}
	first, _ := utf8.DecodeRuneInString(local)
	if isClass(v.Graph, entity) {
		if !unicode.IsUpper(first) {
			report("naming-convention", entity, "class local name %q should start uppercase", local)
		}
	} else if !unicode.IsLower(first) {
		report("naming-convention", entity, "local name %q should start lowercase", local)
	}
}

// checkPropertyValues enforces value-shape rules: an object property never
// takes a literal object, a datatype property has range rdfs:Literal and
// only literal objects.
func (v *Validator) checkPropertyValues(entity graph.IRI, report reporter) {
	types := v.Graph.Objects(entity, graph.IRI(vocabulary.RdfType))
	isObjectProp := containsTerm(types, graph.IRI(vocabulary.OwlObjectProperty))
	isDatatypeProp := containsTerm(types, graph.IRI(vocabulary.OwlDatatypeProperty))
	if !isObjectProp && !isDatatypeProp {
		return
	}

	if isDatatypeProp {
		ranges := v.Graph.Objects(entity, graph.IRI(vocabulary.RdfsRange))
		for _, r := range ranges {
			if r != graph.Term(graph.IRI(vocabulary.RdfsLiteral)) {
				report("datatype-range", entity, "datatype property has range %s instead of rdfs:Literal", r)
			}
		}
		if len(ranges) == 0 {
			report("datatype-range", entity, "datatype property has no range")
		}
	}

	for _, t := range v.Graph.Triples() {
		if t.Predicate != entity {
			continue
		}
		_, literal := t.Object.(graph.Literal)
		if isObjectProp && literal {
			report("object-property-literal", entity, "object property has literal value in %s", t)
			return
		}
		if isDatatypeProp && !literal {
			report("datatype-property-resource", entity, "datatype property has non-literal value in %s", t)
			return
		}
	}
}

// checkAnnotationProperty flags annotation properties carrying domain or
// range triples.
func (v *Validator) checkAnnotationProperty(entity graph.IRI, report reporter) {
	types := v.Graph.Objects(entity, graph.IRI(vocabulary.RdfType))
	if !containsTerm(types, graph.IRI(vocabulary.OwlAnnotationProperty)) {
		return
	}
	if v.Graph.HasSubjectPredicate(entity, graph.IRI(vocabulary.RdfsDomain)) ||
		v.Graph.HasSubjectPredicate(entity, graph.IRI(vocabulary.RdfsRange)) {
		report("annotation-property", entity, "annotation property must not declare domain or range")
	}
}

func isDomainRangePair(a, b graph.IRI) bool {
	domain := graph.IRI(vocabulary.RdfsDomain)
	rng := graph.IRI(vocabulary.RdfsRange)
	return (a == domain && b == rng) || (a == rng && b == domain)
}

func isClass(g *graph.Graph, entity graph.IRI) bool {
	for _, o := range g.Objects(entity, graph.IRI(vocabulary.RdfType)) {
		if o == graph.Term(graph.IRI(vocabulary.OwlClass)) ||
			o == graph.Term(graph.IRI(vocabulary.OwlDeprecatedClass)) {
			return true
		}
	}
	return false
}

func isDeprecated(g *graph.Graph, entity graph.IRI) bool {
	for _, o := range g.Objects(entity, graph.IRI(vocabulary.OwlDeprecated)) {
		if lit, ok := o.(graph.Literal); ok && lit.Value == "true" {
			return true
		}
	}
	return false
}

func containsTerm(terms []graph.Term, want graph.Term) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}

func dedupe(preds []graph.IRI) []graph.IRI {
	var out []graph.IRI
	seen := make(map[graph.IRI]struct{})
	for _, p := range preds {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
