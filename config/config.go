// Package config provides configuration loading and management for the
// vocabulary compiler.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete compiler configuration.
type Config struct {
	Vocabulary VocabularyConfig  `yaml:"vocabulary"`
	Columns    ColumnsConfig     `yaml:"columns"`
	Prefixes   map[string]string `yaml:"prefixes"`
	Fetch      FetchConfig       `yaml:"fetch"`
}

// VocabularyConfig identifies the vocabulary under management.
type VocabularyConfig struct {
	// Prefix is the compact prefix entity identifiers must carry (e.g. "lkd").
	Prefix string `yaml:"prefix"`
	// Namespace is the IRI base the prefix expands to. The namespace IRI
	// itself is the ontology subject for version metadata.
	Namespace string `yaml:"namespace"`
	// PublishingURL is the base URL versioned releases are published under.
	PublishingURL string `yaml:"publishing_url"`
	// Languages lists the label languages, in preference order.
	Languages []string `yaml:"languages"`
}

// ColumnsConfig names the tabular input columns. Exact column names are
// configuration, not protocol.
type ColumnsConfig struct {
	ID            string `yaml:"id"`
	Type          string `yaml:"type"`
	Status        string `yaml:"status"`
	Domain        string `yaml:"domain"`
	Range         string `yaml:"range"`
	SubClassOf    string `yaml:"subclass_of"`
	SubPropertyOf string `yaml:"subproperty_of"`
	ReplacedBy    string `yaml:"replaced_by"`

	// LabelPrefix is combined with each configured language, e.g.
	// "rdfs:label-" + "fi" -> "rdfs:label-fi".
	LabelPrefix string `yaml:"label_prefix"`

	// Mapping columns: the relation token column and the target IRI column
	// per external vocabulary.
	BibframeRelation string `yaml:"bibframe_relation"`
	BibframeID       string `yaml:"bibframe_id"`
	RDARelation      string `yaml:"rda_relation"`
	RDAID            string `yaml:"rda_id"`
}

// LabelColumn returns the label column name for a language.
func (c ColumnsConfig) LabelColumn(lang string) string {
	return c.LabelPrefix + lang
}

// FetchConfig configures the external reference fetcher.
type FetchConfig struct {
	// CacheDir is where fetched documents are memoized on disk.
	CacheDir string `yaml:"cache_dir"`
	// Pace is the fixed delay between consecutive uncached fetches.
	Pace time.Duration `yaml:"pace"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Vocabulary: VocabularyConfig{
			Prefix:        "lkd",
			Namespace:     "http://example.org/lkd/",
			PublishingURL: "http://schema.finto.fi/lkd/",
			Languages:     []string{"fi", "sv"},
		},
		Columns: ColumnsConfig{
			ID:               "id",
			Type:             "rdf:type",
			Status:           "status",
			Domain:           "rdfs:domain",
			Range:            "rdfs:range",
			SubClassOf:       "rdfs:subClassOf",
			SubPropertyOf:    "rdfs:subPropertyOf",
			ReplacedBy:       "dct:isReplacedBy",
			LabelPrefix:      "rdfs:label-",
			BibframeRelation: "mapping to BF",
			BibframeID:       "bibframe-id",
			RDARelation:      "mapping to RDA",
			RDAID:            "RDA-id",
		},
		Prefixes: defaultPrefixes(),
		Fetch: FetchConfig{
			CacheDir: ".semvocab-cache",
			Pace:     500 * time.Millisecond,
		},
	}
}

// defaultPrefixes returns the standard prefix table used in conversion,
// covering the W3C vocabularies and the external registries the mapping
// columns point at.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"owl":    "http://www.w3.org/2002/07/owl#",
		"xsd":    "http://www.w3.org/2001/XMLSchema#",
		"skos":   "http://www.w3.org/2004/02/skos/core#",
		"dct":    "http://purl.org/dc/terms/",
		"bf":     "http://id.loc.gov/ontologies/bibframe/",
		"bflc":   "http://id.loc.gov/ontologies/bflc/",
		"rdac":   "http://rdaregistry.info/Elements/c/",
		"rdau":   "http://rdaregistry.info/Elements/u/",
		"rdaw":   "http://rdaregistry.info/Elements/w/",
		"rdae":   "http://rdaregistry.info/Elements/e/",
		"rdam":   "http://rdaregistry.info/Elements/m/",
		"rdai":   "http://rdaregistry.info/Elements/i/",
		"rdaa":   "http://rdaregistry.info/Elements/a/",
		"rdan":   "http://rdaregistry.info/Elements/n/",
		"rdap":   "http://rdaregistry.info/Elements/p/",
		"rdat":   "http://rdaregistry.info/Elements/t/",
		"rdax":   "http://rdaregistry.info/Elements/x/",
		"rdaco":  "http://rdaregistry.info/termList/RDAContentType/",
		"rdamt":  "http://rdaregistry.info/termList/RDAMediaType/",
		"rdafnv": "http://rdaregistry.info/termList/noteForm/",
		"rdafmn": "http://rdaregistry.info/termList/MusNotation/",
		"mts":    "http://urn.fi/URN:NBN:fi:au:mts:",
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Vocabulary.Prefix == "" {
		return fmt.Errorf("vocabulary.prefix is required")
	}
	if c.Vocabulary.Namespace == "" {
		return fmt.Errorf("vocabulary.namespace is required")
	}
	if c.Vocabulary.PublishingURL == "" {
		return fmt.Errorf("vocabulary.publishing_url is required")
	}
	if len(c.Vocabulary.Languages) == 0 {
		return fmt.Errorf("vocabulary.languages must list at least one language")
	}
	if c.Columns.ID == "" {
		return fmt.Errorf("columns.id is required")
	}
	if c.Columns.Type == "" {
		return fmt.Errorf("columns.type is required")
	}
	if c.Columns.Status == "" {
		return fmt.Errorf("columns.status is required")
	}
	if c.Fetch.Pace < 0 {
		return fmt.Errorf("fetch.pace must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, layered over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Vocabulary.Prefix != "" {
		c.Vocabulary.Prefix = other.Vocabulary.Prefix
	}
	if other.Vocabulary.Namespace != "" {
		c.Vocabulary.Namespace = other.Vocabulary.Namespace
	}
	if other.Vocabulary.PublishingURL != "" {
		c.Vocabulary.PublishingURL = other.Vocabulary.PublishingURL
	}
	if len(other.Vocabulary.Languages) > 0 {
		c.Vocabulary.Languages = other.Vocabulary.Languages
	}

	mergeColumn := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	mergeColumn(&c.Columns.ID, other.Columns.ID)
	mergeColumn(&c.Columns.Type, other.Columns.Type)
	mergeColumn(&c.Columns.Status, other.Columns.Status)
	mergeColumn(&c.Columns.Domain, other.Columns.Domain)
	mergeColumn(&c.Columns.Range, other.Columns.Range)
	mergeColumn(&c.Columns.SubClassOf, other.Columns.SubClassOf)
	mergeColumn(&c.Columns.SubPropertyOf, other.Columns.SubPropertyOf)
	mergeColumn(&c.Columns.ReplacedBy, other.Columns.ReplacedBy)
	mergeColumn(&c.Columns.LabelPrefix, other.Columns.LabelPrefix)
	mergeColumn(&c.Columns.BibframeRelation, other.Columns.BibframeRelation)
	mergeColumn(&c.Columns.BibframeID, other.Columns.BibframeID)
	mergeColumn(&c.Columns.RDARelation, other.Columns.RDARelation)
	mergeColumn(&c.Columns.RDAID, other.Columns.RDAID)

	if c.Prefixes == nil {
		c.Prefixes = make(map[string]string)
	}
	for prefix, base := range other.Prefixes {
		c.Prefixes[prefix] = base
	}

	if other.Fetch.CacheDir != "" {
		c.Fetch.CacheDir = other.Fetch.CacheDir
	}
	if other.Fetch.Pace != 0 {
		c.Fetch.Pace = other.Fetch.Pace
	}
}

// NamespaceBindings returns the full prefix table including the managed
// vocabulary's own binding.
func (c *Config) NamespaceBindings() map[string]string {
	out := make(map[string]string, len(c.Prefixes)+1)
	for prefix, base := range c.Prefixes {
		out[prefix] = base
	}
	out[c.Vocabulary.Prefix] = c.Vocabulary.Namespace
	return out
}
