// Package export serializes the finished graph. Serialization is a pure
// projection: it imposes no invariants of its own.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"
)

// Exporter serializes a graph using a namespace table for prefixed names.
type Exporter struct {
	g  *graph.Graph
	ns *graph.Namespaces
}

// NewExporter creates an exporter over g.
func NewExporter(g *graph.Graph, ns *graph.Namespaces) *Exporter {
	return &Exporter{g: g, ns: ns}
}

// Export serializes the graph in the given format.
func (e *Exporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile serializes to a temporary file first and renames it into place,
// so a failed run never leaves a partial output file.
func (e *Exporter) WriteFile(path string, format Format) error {
	output, err := e.Export(format)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".semvocab-*")
	if err != nil {
		return fmt.Errorf("creating temp output: %w", err)
	}
	if _, err := tmp.WriteString(output); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing output: %w", err)
	}
	// CreateTemp opens the file 0600; published artifacts should be readable.
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming output into place: %w", err)
	}
	return nil
}

// toTurtle serializes to Turtle. RDF collections are inlined as ( ... );
// other blank nodes keep their labels.
func (e *Exporter) toTurtle() string {
	var sb strings.Builder

	for _, prefix := range e.ns.Prefixes() {
		base, _ := e.ns.Base(prefix)
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, base)
	}
	sb.WriteString("\n")

	for _, subject := range e.g.SubjectSet() {
		// Collection nodes are rendered inline at their point of use.
		if e.isListNode(subject) {
			continue
		}
		e.writeSubjectTurtle(&sb, subject)
		sb.WriteString("\n")
	}

	return sb.String()
}

func (e *Exporter) writeSubjectTurtle(sb *strings.Builder, subject graph.Term) {
	triples := e.g.ForSubject(subject)

	// Group objects per predicate, preserving first-seen predicate order.
	var preds []graph.IRI
	objects := make(map[graph.IRI][]graph.Term)
	for _, t := range triples {
		if _, ok := objects[t.Predicate]; !ok {
			preds = append(preds, t.Predicate)
		}
		objects[t.Predicate] = append(objects[t.Predicate], t.Object)
	}

	fmt.Fprintf(sb, "%s\n", e.termTurtle(subject))
	for i, p := range preds {
		name := e.ns.Compact(p)
		if string(p) == vocabulary.RdfType {
			name = "a"
		}
		rendered := make([]string, len(objects[p]))
		for j, o := range objects[p] {
			rendered[j] = e.termTurtle(o)
		}
		fmt.Fprintf(sb, "    %s %s", name, strings.Join(rendered, ", "))
		if i < len(preds)-1 {
			sb.WriteString(" ;\n")
		} else {
			sb.WriteString(" .\n")
		}
	}
}

// termTurtle renders a term for Turtle output, inlining collections.
func (e *Exporter) termTurtle(t graph.Term) string {
	switch v := t.(type) {
	case graph.IRI:
		if string(v) == vocabulary.RdfNil {
			return "()"
		}
		return e.ns.Compact(v)
	case graph.BlankNode:
		if e.isListNode(v) {
			items := e.g.ListItems(v)
			rendered := make([]string, len(items))
			for i, item := range items {
				rendered[i] = e.termTurtle(item)
			}
			return "( " + strings.Join(rendered, " ") + " )"
		}
		return v.String()
	case graph.Literal:
		s := `"` + escapeString(v.Value) + `"`
		if v.Lang != "" {
			return s + "@" + v.Lang
		}
		if v.Datatype != "" {
			return s + "^^" + e.ns.Compact(v.Datatype)
		}
		return s
	default:
		return t.String()
	}
}

// isListNode reports whether a term heads or continues an RDF collection.
func (e *Exporter) isListNode(t graph.Term) bool {
	if _, ok := t.(graph.BlankNode); !ok {
		return false
	}
	return e.g.HasSubjectPredicate(t, graph.IRI(vocabulary.RdfFirst))
}

// toNTriples serializes every triple on its own line, collections included,
// in deterministic sorted order.
func (e *Exporter) toNTriples() string {
	lines := make([]string, 0, e.g.Len())
	for _, t := range e.g.Triples() {
		lines = append(lines, t.String())
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}

// escapeString escapes special characters for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
