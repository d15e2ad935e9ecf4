package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/semvocab/compiler"
	"github.com/c360studio/semvocab/config"
	"github.com/c360studio/semvocab/export"
	"github.com/c360studio/semvocab/fetch"
	"github.com/c360studio/semvocab/graph"
	"github.com/c360studio/semvocab/release"
	"github.com/c360studio/semvocab/validate"
)

// timeNow is swapped in tests for deterministic timestamps.
var timeNow = time.Now

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Tabular vocabulary to RDF graph compiler",
		Long: `Semvocab compiles CSV vocabulary term tables into a validated RDF
graph. Rows describe classes and properties; the compiler asserts their
types, relations and external mappings, applies the deprecation lifecycle,
injects versioned release metadata, and serializes the result as Turtle
or N-Triples.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(convertCmd(&configPath))
	cmd.AddCommand(checkCmd(&configPath))
	cmd.AddCommand(urnmapCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// convertOptions carries the convert command's flag values.
type convertOptions struct {
	inputs        []string
	output        string
	ntriplesPath  string
	metadataPath  string
	namespace     string
	publishingURL string
	version       string
	priorVersion  string
	releasesPath  string
	notesPath     string
	resolveLabels bool
	watch         bool
}

func convertCmd(configPath *string) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Compile CSV vocabulary tables into an RDF graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, opts.namespace, opts.publishingURL)
			if err != nil {
				return err
			}
			if opts.watch {
				return watchAndConvert(cmd.Context(), cfg, opts)
			}
			return runConvert(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.inputs, "input", "i", nil, "Input CSV path or glob (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output Turtle file path")
	cmd.Flags().StringVar(&opts.ntriplesPath, "ntriples", "", "Additional N-Triples output path")
	cmd.Flags().StringVar(&opts.metadataPath, "metadata", "", "Turtle metadata overlay merged before row processing")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Managed vocabulary namespace (overrides config)")
	cmd.Flags().StringVar(&opts.publishingURL, "publishing-url", "", "Published documentation base URL (overrides config)")
	cmd.Flags().StringVar(&opts.version, "version", "", "Version being built (x.y.z)")
	cmd.Flags().StringVar(&opts.priorVersion, "prior-version", "", "Previous published version (x.y.z)")
	cmd.Flags().StringVar(&opts.releasesPath, "releases", "", "Releases CSV (version, issued date, descriptions)")
	cmd.Flags().StringVar(&opts.notesPath, "change-notes", "", "Change notes CSV")
	cmd.Flags().BoolVar(&opts.resolveLabels, "resolve-labels", false, "Fetch labels for external mapping targets")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Re-run conversion when an input file changes")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func checkCmd(configPath *string) *cobra.Command {
	var (
		inputs       []string
		metadataPath string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compile and validate without writing output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, "", "")
			if err != nil {
				return err
			}

			c, err := buildGraph(cfg, inputs, metadataPath)
			if err != nil {
				return err
			}

			findings := runValidation(cfg, c, false)
			total := len(findings) + len(c.Advisories())
			slog.Info("check complete",
				"triples", c.Graph().Len(),
				"findings", total)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "Input CSV path or glob (repeatable)")
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "Turtle metadata overlay merged before row processing")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func urnmapCmd() *cobra.Command {
	var (
		input         string
		output        string
		urnNamespace  string
		urlPrefix     string
		auxNamespaces []string
	)

	cmd := &cobra.Command{
		Use:   "urnmap",
		Short: "Build the URN resolver location-mapping XML from a Turtle file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()

			g := graph.New()
			ns := graph.NewNamespaces()
			if err := graph.ReadTurtle(f, g, ns); err != nil {
				return fmt.Errorf("reading %s: %w", input, err)
			}

			mapper := &export.URNMapper{
				URNNamespace:        urnNamespace,
				URLPrefix:           urlPrefix,
				AuxiliaryNamespaces: auxNamespaces,
				Log:                 slog.Default(),
			}
			doc := mapper.Map(g, ns)
			data, err := doc.Encode()
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			slog.Info("URN mapping written", "path", output, "records", len(doc.Records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input Turtle file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output XML file")
	cmd.Flags().StringVar(&urnNamespace, "urn-namespace", "", "URN namespace of the vocabulary's identifiers")
	cmd.Flags().StringVar(&urlPrefix, "url-prefix", "", "Published documentation URL the URNs resolve to")
	cmd.Flags().StringArrayVar(&auxNamespaces, "aux-namespace", nil, "Auxiliary URN namespace (repeatable)")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("urn-namespace")
	_ = cmd.MarkFlagRequired("url-prefix")

	return cmd
}

// loadConfig layers defaults, user and project config, the explicit file,
// and finally the command-line namespace overrides.
func loadConfig(path, namespace, publishingURL string) (*config.Config, error) {
	cfg, err := config.NewLoader(slog.Default()).Load()
	if err != nil {
		return nil, err
	}
	if path != "" {
		fileCfg, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
	}
	if namespace != "" {
		cfg.Vocabulary.Namespace = namespace
	}
	if publishingURL != "" {
		cfg.Vocabulary.PublishingURL = publishingURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// expandInputs resolves glob patterns to concrete paths, preserving
// pattern order and de-duplicating.
func expandInputs(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad input pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input pattern %q matched no files", pattern)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	return paths, nil
}

// buildGraph merges the metadata overlay, then compiles every input CSV
// into one graph.
func buildGraph(cfg *config.Config, inputs []string, metadataPath string) (*compiler.Compiler, error) {
	paths, err := expandInputs(inputs)
	if err != nil {
		return nil, err
	}

	g := graph.New()
	ns := graph.NewNamespaces()
	for prefix, base := range cfg.NamespaceBindings() {
		ns.Bind(prefix, base)
	}

	if metadataPath != "" {
		f, err := os.Open(metadataPath)
		if err != nil {
			return nil, fmt.Errorf("opening metadata overlay: %w", err)
		}
		err = graph.ReadTurtle(f, g, ns)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading metadata overlay %s: %w", metadataPath, err)
		}
		slog.Debug("metadata overlay merged", "path", metadataPath, "triples", g.Len())
	}

	c := compiler.New(cfg, g, ns, slog.Default())
	for _, path := range paths {
		slog.Info("compiling", "path", path)
		if err := c.CompileFile(path); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func runValidation(cfg *config.Config, c *compiler.Compiler, versioned bool) []validate.Finding {
	v := &validate.Validator{
		Graph:           c.Graph(),
		NS:              c.Namespaces(),
		Namespace:       cfg.Vocabulary.Namespace,
		BuildingVersion: versioned,
		Log:             slog.Default(),
	}
	return v.Run()
}

func runConvert(ctx context.Context, cfg *config.Config, opts convertOptions) error {
	c, err := buildGraph(cfg, opts.inputs, opts.metadataPath)
	if err != nil {
		return err
	}
	g, ns := c.Graph(), c.Namespaces()

	if opts.resolveLabels {
		client := fetch.New(cfg.Fetch.CacheDir, cfg.Fetch.Pace)
		if err := c.ResolveExternalLabels(ctx, client); err != nil {
			return err
		}
	}

	var version, prior *release.Version
	if opts.version != "" {
		v, err := release.ParseVersion(opts.version)
		if err != nil {
			return fmt.Errorf("bad --version: %w", err)
		}
		version = &v
	}
	if opts.priorVersion != "" {
		v, err := release.ParseVersion(opts.priorVersion)
		if err != nil {
			return fmt.Errorf("bad --prior-version: %w", err)
		}
		prior = &v
	}

	var releases release.Releases
	if opts.releasesPath != "" {
		releases, err = release.ReadReleasesFile(opts.releasesPath)
		if err != nil {
			return err
		}
	}

	if opts.notesPath != "" {
		if version == nil {
			return fmt.Errorf("--change-notes requires --version")
		}
		notes, err := release.ReadChangeNotesFile(opts.notesPath)
		if err != nil {
			return err
		}
		if err := release.ApplyChangeNotes(g, ns, notes, releases, *version, slog.Default()); err != nil {
			return err
		}
	}

	ontology := graph.IRI(cfg.Vocabulary.Namespace)
	release.InjectVersionMetadata(g, ontology, cfg.Vocabulary.PublishingURL, version, prior, timeNow())

	if version != nil && releases != nil {
		if rel, ok := releases.Find(*version); ok {
			if err := release.AttachDescriptions(g, ontology, rel, cfg.Vocabulary.Languages); err != nil {
				return err
			}
		}
	}

	findings := runValidation(cfg, c, version != nil)

	exporter := export.NewExporter(g, ns)
	if err := exporter.WriteFile(opts.output, export.FormatTurtle); err != nil {
		return err
	}
	if opts.ntriplesPath != "" {
		if err := exporter.WriteFile(opts.ntriplesPath, export.FormatNTriples); err != nil {
			return err
		}
	}

	slog.Info("conversion complete",
		"output", opts.output,
		"triples", g.Len(),
		"findings", len(findings)+len(c.Advisories()))
	return nil
}

// watchAndConvert runs a conversion, then re-runs it whenever an input
// file changes. A failed rebuild is logged and does not stop the watch.
func watchAndConvert(ctx context.Context, cfg *config.Config, opts convertOptions) error {
	if err := runConvert(ctx, cfg, opts); err != nil {
		slog.Error("initial conversion failed", "error", err)
	}

	paths, err := expandInputs(opts.inputs)
	if err != nil {
		return err
	}
	if opts.metadataPath != "" {
		paths = append(paths, opts.metadataPath)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories: editors commonly replace files, which drops
	// per-file watches.
	dirs := make(map[string]struct{})
	watched := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	signalCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("watching for changes", "files", len(watched))
	for {
		select {
		case <-signalCtx.Done():
			slog.Info("watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := watched[abs]; !ok {
				continue
			}
			slog.Info("input changed, rebuilding", "path", event.Name)
			if err := runConvert(signalCtx, cfg, opts); err != nil {
				slog.Error("conversion failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}
