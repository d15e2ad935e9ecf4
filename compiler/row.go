// Package compiler turns tabular vocabulary descriptions into a validated
// semantic graph: row normalization, union expansion, type assignment,
// cross-vocabulary mapping validation, and the deprecation transition.
package compiler

import (
	"fmt"
	"strings"
)

// Row is a mapping from column name to cell value.
type Row map[string]string

// sentinels are cell values treated as empty/missing.
var sentinels = map[string]struct{}{
	"":     {},
	"#N/A": {},
	"N/A":  {},
	"?":    {},
}

// Status is the lifecycle status a row declares for its entity.
type Status int

const (
	// StatusUnknown marks rows outside the allowed enumeration; such rows
	// are silently skipped.
	StatusUnknown Status = iota
	StatusPublished
	StatusPlanned
	StatusDeprecated
)

// ParseStatus maps the lifecycle-status column to a Status. Values outside
// the enumeration come back as StatusUnknown.
func ParseStatus(value string) Status {
	switch value {
	case "published":
		return StatusPublished
	case "planned":
		return StatusPlanned
	case "deprecated":
		return StatusDeprecated
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusPublished:
		return "published"
	case StatusPlanned:
		return "planned"
	case StatusDeprecated:
		return "deprecated"
	default:
		return "unknown"
	}
}

// normalizeRow trims every cell and maps sentinel values to empty. It
// returns the normalized row, its parsed status, and whether the row should
// be skipped (unknown status or empty identifier).
//
// The caller keeps the returned row as the next iteration's previous row;
// continuation suppression is applied separately so the retained previous
// row still carries the unsuppressed values.
func (c *Compiler) normalizeRow(raw Row) (row Row, status Status, skip bool, err error) {
	row = make(Row, len(raw))
	for col, val := range raw {
		v := strings.TrimSpace(val)
		if _, missing := sentinels[v]; missing {
			v = ""
		}
		row[col] = v
	}

	status = ParseStatus(row[c.cfg.Columns.Status])
	if status == StatusUnknown {
		return row, status, true, nil
	}

	id := row[c.cfg.Columns.ID]
	if id == "" {
		return row, status, true, nil
	}
	if !strings.HasPrefix(id, c.cfg.Vocabulary.Prefix+":") {
		return nil, status, false, fmt.Errorf("identifier %q is not within the %s: namespace", id, c.cfg.Vocabulary.Prefix)
	}

	return row, status, false, nil
}

// suppressContinuation blanks columns whose value is physically repeated
// from the previous row of the same entity, so multi-valued cells carried
// across a multi-row group are not re-processed. Only the multi-row columns
// (domain and range) participate.
func (c *Compiler) suppressContinuation(row, prev Row) Row {
	if prev == nil || row[c.cfg.Columns.ID] != prev[c.cfg.Columns.ID] {
		return row
	}
	out := make(Row, len(row))
	for col, val := range row {
		out[col] = val
	}
	for _, col := range []string{c.cfg.Columns.Domain, c.cfg.Columns.Range} {
		if out[col] != "" && out[col] == prev[col] {
			out[col] = ""
		}
	}
	return out
}
