package vocabulary

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MappingTarget identifies an external vocabulary a mapping column points at.
// Each target carries its own closed set of allowed relation tokens.
type MappingTarget int

const (
	// TargetBibframe maps local terms to the BIBFRAME ontology.
	TargetBibframe MappingTarget = iota

	// TargetRDA maps local terms to the RDA registry.
	TargetRDA
)

// String returns the display name used in diagnostics.
func (t MappingTarget) String() string {
	switch t {
	case TargetBibframe:
		return "BIBFRAME"
	case TargetRDA:
		return "RDA"
	default:
		return "unknown"
	}
}

// Namespace returns the IRI base of the target vocabulary.
func (t MappingTarget) Namespace() string {
	switch t {
	case TargetBibframe:
		return BibframeNamespace
	case TargetRDA:
		return RDARegistryNamespace
	default:
		return ""
	}
}

// skosMatches is the SKOS mapping relation set shared by both targets today.
// Kept per-target so a target can diverge without touching call sites.
var skosMatches = map[string]string{
	"skos:exactMatch":  SkosExactMatch,
	"skos:closeMatch":  SkosCloseMatch,
	"skos:broadMatch":  SkosBroadMatch,
	"skos:narrowMatch": SkosNarrowMatch,
}

// RelationIRI resolves a mapping relation token against the closed
// enumeration for the target. The second return is false when the token is
// not whitelisted for that target.
func RelationIRI(target MappingTarget, token string) (string, bool) {
	switch target {
	case TargetBibframe, TargetRDA:
		iri, ok := skosMatches[token]
		return iri, ok
	default:
		return "", false
	}
}

// AllowedRelations lists the whitelisted relation tokens for a target,
// for use in error messages.
func AllowedRelations(target MappingTarget) []string {
	switch target {
	case TargetBibframe, TargetRDA:
		return []string{"skos:exactMatch", "skos:closeMatch", "skos:broadMatch", "skos:narrowMatch"}
	default:
		return nil
	}
}

// IsClassReference reports whether an external IRI denotes a class.
// BIBFRAME and the RDA registry follow the convention that class local
// names start with an uppercase character and property local names with a
// lowercase one.
func IsClassReference(iri string) bool {
	local := localName(iri)
	if local == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(local)
	return unicode.IsUpper(first)
}

// IsTermListReference reports whether an IRI points into a controlled term
// list rather than the class/property hierarchy. Term-list references are a
// recognized exception to the class/non-class compatibility check.
func IsTermListReference(iri string) bool {
	return strings.Contains(iri, "/termList/")
}

// localName returns the fragment or last path segment of an IRI.
func localName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	trimmed := strings.TrimRight(iri, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 && i < len(trimmed)-1 {
		return trimmed[i+1:]
	}
	return ""
}

// LocalName exposes the fragment/segment split for diagnostics and the URN
// mapping exporter.
func LocalName(iri string) string {
	return localName(iri)
}
