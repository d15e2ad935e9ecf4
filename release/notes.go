package release

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/vocabulary"
)

// Change-notes table column names.
const (
	colNoteID      = "id"
	colNoteVersion = "owl:versionInfo"
	colNoteText    = "note"
)

// deprecatedMarker is the prefix a change note must carry to survive on a
// deprecated subject.
const deprecatedMarker = "Deprecated"

// ChangeNote is one per-entity modification-history entry.
type ChangeNote struct {
	Subject string
	Version string
	Text    string
}

// ReadChangeNotesFile loads the change-notes table from a CSV file.
func ReadChangeNotesFile(path string) ([]ChangeNote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening change-notes file: %w", err)
	}
	defer f.Close()
	return ReadChangeNotes(f)
}

// ReadChangeNotes parses subject/version/note rows.
func ReadChangeNotes(r io.Reader) ([]ChangeNote, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading change-notes header: %w", err)
	}

	var out []ChangeNote
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading change-notes row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = strings.TrimSpace(record[i])
			}
		}
		out = append(out, ChangeNote{
			Subject: row[colNoteID],
			Version: row[colNoteVersion],
			Text:    row[colNoteText],
		})
	}
}

// ApplyChangeNotes attaches change notes to entity modification histories.
//
// A note is attached, as a dct:modified literal of the form
// "<issued date> (<note text>)", only when its version is ordered before or
// equal to the version being built. Malformed note versions are dropped
// with a warning; merely later versions are excluded silently. Duplicate
// same-day notes for one subject are flagged but still asserted. Subjects
// already deprecated keep only notes whose text starts with "Deprecated";
// the first drop per subject is logged at debug level and the rest are
// suppressed to avoid log spam.
func ApplyChangeNotes(g *graph.Graph, ns *graph.Namespaces, notes []ChangeNote, releases Releases, building Version, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	seenDates := make(map[string]struct{})
	droppedLogged := make(map[string]struct{})

	for _, note := range notes {
		version, err := ParseVersion(note.Version)
		if err != nil {
			logger.Warn("dropping change note with malformed version",
				slog.String("subject", note.Subject),
				slog.String("version", note.Version))
			continue
		}
		if !version.LessOrEqual(building) {
			continue
		}

		rel, ok := releases.Find(version)
		if !ok {
			logger.Warn("dropping change note with no release date",
				slog.String("subject", note.Subject),
				slog.String("version", note.Version))
			continue
		}

		subject, err := ns.Expand(note.Subject)
		if err != nil {
			return fmt.Errorf("change note for %q: %w", note.Subject, err)
		}

		if isDeprecated(g, subject) && !strings.HasPrefix(note.Text, deprecatedMarker) {
			if _, logged := droppedLogged[note.Subject]; !logged {
				droppedLogged[note.Subject] = struct{}{}
				logger.Debug("dropping non-deprecation change note for deprecated subject",
					slog.String("subject", note.Subject))
			}
			continue
		}

		date := rel.Issued.Format("2006-01-02")
		dayKey := note.Subject + "|" + date
		if _, dup := seenDates[dayKey]; dup {
			logger.Warn("duplicate same-day change note",
				slog.String("subject", note.Subject),
				slog.String("date", date))
		}
		seenDates[dayKey] = struct{}{}

		g.Assert(subject, graph.IRI(vocabulary.DctModified),
			graph.NewLiteral(fmt.Sprintf("%s (%s)", date, note.Text)))
	}
	return nil
}

func isDeprecated(g *graph.Graph, subject graph.Term) bool {
	for _, o := range g.Objects(subject, graph.IRI(vocabulary.OwlDeprecated)) {
		if lit, ok := o.(graph.Literal); ok && lit.Value == "true" {
			return true
		}
	}
	return false
}
