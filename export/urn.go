package export

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/c360studio/semvocab/graph"
)

const (
	locationMappingNS     = "urn:nbn:se:uu:ub:epc-schema:rs-location-mapping"
	locationMappingSchema = locationMappingNS +
		" http://urn.kb.se/resolve?urn=" + locationMappingNS + "&godirectly"
	protocolVersion = "3.0"
)

// URNDocument is the root element of the resolver location mapping document.
type URNDocument struct {
	XMLName         xml.Name    `xml:"records"`
	Xmlns           string      `xml:"xmlns,attr"`
	XmlnsXSI        string      `xml:"xmlns:xsi,attr"`
	SchemaLocation  string      `xml:"xsi:schemaLocation,attr"`
	ProtocolVersion string      `xml:"protocol-version"`
	Records         []URNRecord `xml:"record"`
}

type URNRecord struct {
	Header URNHeader `xml:"header"`
}

type URNHeader struct {
	Identifier   string          `xml:"identifier"`
	Destinations URNDestinations `xml:"destinations"`
}

type URNDestinations struct {
	Destination URNDestination `xml:"destination"`
}

type URNDestination struct {
	Status string `xml:"status,attr"`
	URL    string `xml:"url"`
}

// URNMapper builds the URN resolver location-mapping XML for a published
// graph whose subjects are URN identifiers.
type URNMapper struct {
	// URNNamespace is the URN prefix of the vocabulary's own identifiers.
	URNNamespace string

	// URLPrefix is the published documentation URL the URNs resolve to.
	URLPrefix string

	// AuxiliaryNamespaces lists further URN prefixes mapped to the same
	// documentation page, keyed by fragment anchors in prefixed-name form.
	AuxiliaryNamespaces []string

	Log *slog.Logger
}

// Map builds the location-mapping document from every IRI subject in g.
// Subjects outside all configured namespaces are skipped with an info log.
func (m *URNMapper) Map(g *graph.Graph, ns *graph.Namespaces) *URNDocument {
	logger := m.Log
	if logger == nil {
		logger = slog.Default()
	}

	doc := &URNDocument{
		Xmlns:           locationMappingNS,
		XmlnsXSI:        "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLocation:  locationMappingSchema,
		ProtocolVersion: protocolVersion,
	}

	var subjects []string
	for _, s := range g.SubjectSet() {
		if iri, ok := s.(graph.IRI); ok {
			subjects = append(subjects, string(iri))
		}
	}
	sort.Strings(subjects)

	for _, subject := range subjects {
		urnNamespace := m.URNNamespace
		separator := "#"
		var fragment string

		if rest, ok := strings.CutPrefix(subject, m.URNNamespace); ok {
			if i := strings.LastIndex(rest, ":"); i >= 0 {
				rest = rest[i+1:]
			}
			fragment = rest
			if fragment == "" {
				separator = ""
			}
		} else {
			matched := false
			for _, aux := range m.AuxiliaryNamespaces {
				if strings.Contains(subject, aux) {
					fragment = ns.Compact(graph.IRI(subject))
					urnNamespace = aux
					matched = true
					break
				}
			}
			if !matched {
				logger.Info(fmt.Sprintf("Skipped mapping %s", subject))
				continue
			}
		}

		local := fragment
		if i := strings.LastIndex(local, ":"); i >= 0 {
			local = local[i+1:]
		}

		doc.Records = append(doc.Records, URNRecord{
			Header: URNHeader{
				Identifier: urnNamespace + local,
				Destinations: URNDestinations{
					Destination: URNDestination{
						Status: "activated",
						URL:    m.URLPrefix + separator + fragment,
					},
				},
			},
		})
	}

	return doc
}

// Encode serializes the location-mapping document with an XML declaration.
func (d *URNDocument) Encode() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling location mapping: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
