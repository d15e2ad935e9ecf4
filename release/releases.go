package release

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Releases table column names.
const (
	colVersion = "owl:versionInfo"
	colIssued  = "dct:issued"

	// descColPrefix is combined with a language code, e.g. "html-fi".
	descColPrefix = "html-"
)

// Release is one row of the releases table: a version, its issued date,
// and a per-language HTML description fragment.
type Release struct {
	Version      Version
	Issued       time.Time
	Descriptions map[string]string
}

// Releases is the version-to-issued-date table consulted when a version is
// supplied.
type Releases []Release

// ReadReleasesFile loads the releases table from a CSV file.
func ReadReleasesFile(path string) (Releases, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening releases file: %w", err)
	}
	defer f.Close()
	return ReadReleases(f)
}

// ReadReleases parses the releases table. The header row must carry the
// version and issued columns; any "html-<lang>" columns become description
// fragments for that language.
func ReadReleases(r io.Reader) (Releases, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading releases header: %w", err)
	}

	var out Releases
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading releases row: %w", err)
		}
		line++

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = strings.TrimSpace(record[i])
			}
		}

		version, err := ParseVersion(row[colVersion])
		if err != nil {
			return nil, fmt.Errorf("releases row %d: %w", line, err)
		}
		issued, err := time.Parse("2006-01-02", row[colIssued])
		if err != nil {
			return nil, fmt.Errorf("releases row %d: issued date %q: %w", line, row[colIssued], err)
		}

		rel := Release{Version: version, Issued: issued, Descriptions: make(map[string]string)}
		for col, val := range row {
			if lang, ok := strings.CutPrefix(col, descColPrefix); ok && val != "" {
				rel.Descriptions[lang] = val
			}
		}
		out = append(out, rel)
	}
}

// Find returns the release for a version, if present.
func (r Releases) Find(v Version) (Release, bool) {
	for _, rel := range r {
		if rel.Version == v {
			return rel, true
		}
	}
	return Release{}, false
}

// DescriptionText converts the HTML description fragment for a language
// into plain text suitable for a description literal.
func (rel Release) DescriptionText(lang string) (string, error) {
	fragment, ok := rel.Descriptions[lang]
	if !ok {
		return "", nil
	}
	converter := md.NewConverter("", true, nil)
	text, err := converter.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting %s description fragment: %w", lang, err)
	}
	return strings.TrimSpace(text), nil
}
