// Package cmd wires the conform command-line interface.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/conform/internal/checker"
	"github.com/harrison/conform/internal/config"
	"github.com/harrison/conform/internal/display"
	"github.com/harrison/conform/internal/parser"
	"github.com/harrison/conform/internal/resolver"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// checkOptions captures the root command's flag values.
type checkOptions struct {
	configFile string
	configURL  string
	contextDir string
	timeout    time.Duration
	noColor    bool
	verbose    bool
}

// NewRootCommand creates and returns the root cobra command for conform
func NewRootCommand() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "conform",
		Short: "Enforce YAML|JSON|TOML|text file contents",
		Long: `Conform checks a directory tree against a declarative specification:
required and forbidden files and folders, file lengths, regex content
constraints, and structural schema constraints on JSON, YAML, and TOML
files, where the schema is given by example.

Specifications compose: a root document may include remote documents,
which are fetched and merged recursively.

Exit code: 0 if the tree conforms, 1 if problems are found`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "file", "f", "conform.yaml", "The config file to check")
	cmd.Flags().StringVarP(&opts.configURL, "url", "u", "", "A url to fetch the config file from instead")
	cmd.Flags().StringVarP(&opts.contextDir, "context", "c", ".", "The folder to check against the config file")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Timeout for each include fetch (default from config)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress while resolving and checking")
	cmd.MarkFlagsMutuallyExclusive("file", "url")

	return cmd
}

// runCheck loads the root document, resolves its includes, checks the
// context directory, and renders the problem report. A non-empty problem
// list surfaces as an error so the process exits non-zero.
func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	cfg, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	fetcher := resolver.NewHTTPFetcher(cfg.HTTPTimeout)

	doc, err := loadDocument(cmd, opts, cfg, fetcher)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		fmt.Fprintf(errOut, "Resolving %d include(s)\n", len(doc.Include))
	}
	items, err := resolver.New(fetcher).Resolve(cmd.Context(), doc)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		fmt.Fprintf(errOut, "Checking %d item(s) against %s\n", len(items), opts.contextDir)
	}
	problems, err := checker.Check(opts.contextDir, items)
	if err != nil {
		return fmt.Errorf("couldn't check folder: %w", err)
	}

	// Problems go to the error stream; stdout stays clean for tooling.
	report := display.NewReport(errOut, cfg.NoColor)
	if len(problems) == 0 {
		if cfg.Verbose {
			report.Success(len(items))
		}
		return nil
	}
	report.Problems(problems)
	return fmt.Errorf("found %d problem(s)", len(problems))
}

// loadSettings merges defaults, the optional .conform/config.yaml in the
// context directory, and any flags the user actually set.
func loadSettings(cmd *cobra.Command, opts *checkOptions) (*config.Config, error) {
	cfg, err := config.LoadConfigFromDir(opts.contextDir)
	if err != nil {
		return nil, err
	}

	var timeout *time.Duration
	var noColor, verbose *bool
	if cmd.Flags().Changed("timeout") {
		timeout = &opts.timeout
	}
	if cmd.Flags().Changed("no-color") {
		noColor = &opts.noColor
	}
	if cmd.Flags().Changed("verbose") {
		verbose = &opts.verbose
	}
	cfg.MergeWithFlags(timeout, noColor, verbose)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDocument reads the root specification from the local file or the
// given URL.
func loadDocument(cmd *cobra.Command, opts *checkOptions, cfg *config.Config, fetcher *resolver.HTTPFetcher) (*parser.Document, error) {
	var (
		data   []byte
		source string
		err    error
	)
	if opts.configURL != "" {
		source = opts.configURL
		if cfg.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Fetching config from %s\n", source)
		}
		data, err = fetcher.Fetch(cmd.Context(), opts.configURL)
	} else {
		source = opts.configFile
		if cfg.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Loading config from %s\n", source)
		}
		data, err = os.ReadFile(opts.configFile)
		if err != nil {
			err = fmt.Errorf("couldn't open config file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	doc, err := parser.Parse(parser.DetectFormat(source), data)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", source, err)
	}
	return doc, nil
}
