package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "lkd", cfg.Vocabulary.Prefix)
	assert.Equal(t, []string{"fi", "sv"}, cfg.Vocabulary.Languages)
	assert.Equal(t, "id", cfg.Columns.ID)
	assert.Equal(t, "rdf:type", cfg.Columns.Type)
	assert.Equal(t, "rdfs:label-fi", cfg.Columns.LabelColumn("fi"))
	assert.Equal(t, 500*time.Millisecond, cfg.Fetch.Pace)
	assert.Equal(t, "http://www.w3.org/2004/02/skos/core#", cfg.Prefixes["skos"])
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing prefix",
			modify:  func(c *Config) { c.Vocabulary.Prefix = "" },
			wantErr: true,
		},
		{
			name:    "missing namespace",
			modify:  func(c *Config) { c.Vocabulary.Namespace = "" },
			wantErr: true,
		},
		{
			name:    "missing publishing URL",
			modify:  func(c *Config) { c.Vocabulary.PublishingURL = "" },
			wantErr: true,
		},
		{
			name:    "no languages",
			modify:  func(c *Config) { c.Vocabulary.Languages = nil },
			wantErr: true,
		},
		{
			name:    "missing id column",
			modify:  func(c *Config) { c.Columns.ID = "" },
			wantErr: true,
		},
		{
			name:    "negative pace",
			modify:  func(c *Config) { c.Fetch.Pace = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vocabulary.Prefix = "demo"
	cfg.Vocabulary.Namespace = "http://example.org/demo/"
	cfg.Vocabulary.Languages = []string{"en"}

	path := filepath.Join(t.TempDir(), "semvocab.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Vocabulary.Prefix)
	assert.Equal(t, "http://example.org/demo/", loaded.Vocabulary.Namespace)
	assert.Equal(t, []string{"en"}, loaded.Vocabulary.Languages)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semvocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vocabulary:\n  prefix: demo\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Vocabulary.Prefix)
	assert.Equal(t, "id", cfg.Columns.ID, "unset fields keep their defaults")
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{}
	other.Vocabulary.Namespace = "http://example.org/other/"
	other.Columns.Status = "lifecycle"
	other.Prefixes = map[string]string{"custom": "http://example.org/custom/"}
	other.Fetch.Pace = time.Second

	base.Merge(other)

	assert.Equal(t, "http://example.org/other/", base.Vocabulary.Namespace)
	assert.Equal(t, "lkd", base.Vocabulary.Prefix, "zero values do not overwrite")
	assert.Equal(t, "lifecycle", base.Columns.Status)
	assert.Equal(t, "id", base.Columns.ID)
	assert.Equal(t, "http://example.org/custom/", base.Prefixes["custom"])
	assert.Equal(t, "http://www.w3.org/2004/02/skos/core#", base.Prefixes["skos"])
	assert.Equal(t, time.Second, base.Fetch.Pace)

	base.Merge(nil)
	assert.Equal(t, "lifecycle", base.Columns.Status)
}

func TestNamespaceBindings(t *testing.T) {
	cfg := DefaultConfig()
	bindings := cfg.NamespaceBindings()

	assert.Equal(t, cfg.Vocabulary.Namespace, bindings["lkd"])
	assert.Equal(t, "http://purl.org/dc/terms/", bindings["dct"])
}
