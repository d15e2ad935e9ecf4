package compiler

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	serrors "github.com/c360studio/semstreams/pkg/errs"
	"github.com/c360studio/semvocab/config"
	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// Advisory is a logged, non-fatal finding. Advisories identify the entity
// by its compact identifier.
type Advisory struct {
	Check   string
	Subject string
	Message string
}

// Compiler drives row processing. It owns the shared graph, the namespace
// table, and the previous-row state used for continuation suppression.
// Processing is strictly sequential: one writer, no concurrent readers.
type Compiler struct {
	cfg *config.Config
	ns  *graph.Namespaces
	g   *graph.Graph
	log *slog.Logger

	advisories []Advisory
}

// New creates a compiler writing into g, resolving prefixed names against
// ns. The namespace table must already carry the managed vocabulary's own
// binding (config.NamespaceBindings provides the full set).
func New(cfg *config.Config, g *graph.Graph, ns *graph.Namespaces, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{cfg: cfg, ns: ns, g: g, log: logger}
}

// Graph returns the shared graph under construction.
func (c *Compiler) Graph() *graph.Graph { return c.g }

// Namespaces returns the namespace table.
func (c *Compiler) Namespaces() *graph.Namespaces { return c.ns }

// Advisories returns the advisory findings collected so far.
func (c *Compiler) Advisories() []Advisory { return c.advisories }

// CompileFile processes one CSV file into the graph.
func (c *Compiler) CompileFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return serrors.WrapFatal(err, "compiler", "CompileFile", "opening input")
	}
	defer f.Close()
	if err := c.Compile(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Compile consumes comma-delimited rows from r, in file order, one at a
// time. The header row defines the column names. Any structural error
// aborts immediately; advisories accumulate.
func (c *Compiler) Compile(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return serrors.WrapInvalid(err, "compiler", "Compile", "reading header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	// Previous-row state for continuation suppression, seeded all-empty.
	prev := make(Row, len(header))
	for _, col := range header {
		prev[col] = ""
	}

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return serrors.WrapInvalid(err, "compiler", "Compile", "reading row")
		}
		line++

		raw := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				raw[col] = record[i]
			} else {
				raw[col] = ""
			}
		}

		row, status, skip, err := c.normalizeRow(raw)
		if err != nil {
			return fmt.Errorf("row %d: %w", line, err)
		}
		if skip {
			continue
		}

		if err := c.processRow(c.suppressContinuation(row, prev), status); err != nil {
			return fmt.Errorf("row %d: %w", line, err)
		}
		prev = row
	}
}

// processRow asserts the triples one normalized row describes. The column
// order below is a documented contract: domain and range are processed
// before the type column because default-range inference depends on
// whether a range triple already exists; mappings run after type so the
// class/non-class compatibility check sees the entity's kind.
func (c *Compiler) processRow(row Row, status Status) error {
	cols := c.cfg.Columns

	subject, err := c.ns.Expand(row[cols.ID])
	if err != nil {
		return err
	}

	for _, lang := range c.cfg.Vocabulary.Languages {
		if label := row[cols.LabelColumn(lang)]; label != "" {
			c.g.Assert(subject, graph.IRI(vocabulary.RdfsLabel), graph.NewLangLiteral(label, lang))
		}
	}

	if v := row[cols.Domain]; v != "" {
		if err := ExpandComplex(c.g, c.ns, subject, graph.IRI(vocabulary.RdfsDomain), v); err != nil {
			return err
		}
	}
	if v := row[cols.Range]; v != "" {
		if err := ExpandComplex(c.g, c.ns, subject, graph.IRI(vocabulary.RdfsRange), v); err != nil {
			return err
		}
	}

	kind, err := ParseKind(row[cols.Type])
	if err != nil {
		return fmt.Errorf("%s: %w", subject, err)
	}
	if err := AssignType(c.g, subject, kind); err != nil {
		return err
	}

	if err := c.assertMapping(subject, vocabulary.TargetBibframe, row[cols.BibframeRelation], row[cols.BibframeID]); err != nil {
		return err
	}
	if err := c.assertMapping(subject, vocabulary.TargetRDA, row[cols.RDARelation], row[cols.RDAID]); err != nil {
		return err
	}

	if err := c.assertEach(subject, graph.IRI(vocabulary.RdfsSubClassOf), row[cols.SubClassOf]); err != nil {
		return err
	}
	if err := c.assertEach(subject, graph.IRI(vocabulary.RdfsSubPropertyOf), row[cols.SubPropertyOf]); err != nil {
		return err
	}

	if status == StatusDeprecated {
		targets, err := c.replacementTargets(row[cols.ReplacedBy])
		if err != nil {
			return err
		}
		Deprecate(c.g, subject, targets)
	}

	return nil
}

// assertEach resolves a comma-separated multi-value cell and asserts one
// triple per value.
func (c *Compiler) assertEach(subject graph.Term, predicate graph.IRI, cell string) error {
	if cell == "" {
		return nil
	}
	for _, part := range strings.Split(cell, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		object, err := c.ns.ResolveTerm(item)
		if err != nil {
			return fmt.Errorf("resolving %s %s %q: %w", subject, predicate, item, err)
		}
		c.g.Assert(subject, predicate, object)
	}
	return nil
}

// advise records an advisory finding and logs it.
func (c *Compiler) advise(check string, subject graph.Term, message string) {
	var id string
	if iri, ok := subject.(graph.IRI); ok {
		id = c.ns.Compact(iri)
	} else {
		id = subject.String()
	}
	c.advisories = append(c.advisories, Advisory{Check: check, Subject: id, Message: message})
	c.log.Warn("advisory", slog.String("check", check), slog.String("subject", id), slog.String("detail", message))
}
