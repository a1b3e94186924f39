package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/takaryo1010/privdict/catalog"
	"github.com/takaryo1010/privdict/dictionary"
	"github.com/takaryo1010/privdict/render"
)

const toolName = "privdict"

// Config holds the application configuration
type Config struct {
	URL        string
	Retired    string
	Format     render.Format
	Timeout    time.Duration
	ConfigPath string
	Check      bool
	Verbose    bool
	OutputFile string
}

// newFetcher and now are package-level variables that can be overridden for testing.
var (
	newFetcher = func(client *http.Client) catalog.FetchFunc { return catalog.AutoFetcher(client) }
	now        = time.Now
)

var errUsage = errors.New("usage error")

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, cfg.Verbose)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, os.Stdout, logger)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags builds the configuration from command-line arguments and the
// optional config file. Flags given explicitly win over file settings.
func parseFlags(args []string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	url := fs.String("url", catalog.DefaultURL, "Catalog URL (http(s), file:// or local path)")
	retired := fs.String("retired", dictionary.DefaultRetired, "Retired marker stored in every definition")
	format := fs.String("format", string(render.FormatPython), "Output format: python, yaml, markdown or html")
	timeout := fs.Duration("timeout", 0, "HTTP timeout (0 means none)")
	configPath := fs.String("config", "", "YAML config file path")
	check := fs.Bool("check", false, "Check the catalog builds and print a summary without writing output")
	verbose := fs.Bool("v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] [output_file]\n", toolName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, fmt.Errorf("%w: at most one output file may be given", errUsage)
	}

	f, err := render.ParseFormat(*format)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		URL:        *url,
		Retired:    *retired,
		Format:     f,
		Timeout:    *timeout,
		ConfigPath: *configPath,
		Check:      *check,
		Verbose:    *verbose,
		OutputFile: fs.Arg(0),
	}

	if cfg.ConfigPath != "" {
		fc, err := LoadConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		explicit := make(map[string]bool)
		fs.Visit(func(fl *flag.Flag) { explicit[fl.Name] = true })
		if err := fc.apply(cfg, explicit); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, cfg *Config, stdout io.Writer, logger *slog.Logger) error {
	dict, err := buildDictionary(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Handle --check mode
	if cfg.Check {
		stats := dict.Stats()
		fmt.Fprintf(stdout, "Catalog at '%s' is valid: %d owners, %d tags.\n", cfg.URL, stats.Owners, stats.Tags)
		return nil
	}

	if cfg.OutputFile == "" {
		return render.Render(stdout, cfg.Format, dict)
	}

	// Render fully before touching the output file.
	info := render.HeaderInfo{
		Filename:  filepath.Base(cfg.OutputFile),
		Tool:      toolName,
		SourceURL: cfg.URL,
		Date:      now(),
	}
	var buf bytes.Buffer
	if err := render.Document(&buf, cfg.Format, dict, info); err != nil {
		return fmt.Errorf("failed to render dictionary: %w", err)
	}
	if err := os.WriteFile(cfg.OutputFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	logger.Info("wrote dictionary", "path", cfg.OutputFile, "format", cfg.Format, "bytes", buf.Len())
	return nil
}

// buildDictionary fetches, parses and builds the dictionary described by cfg.
func buildDictionary(ctx context.Context, cfg *Config, logger *slog.Logger) (dictionary.PrivateDictionary, error) {
	fetch := newFetcher(&http.Client{Timeout: cfg.Timeout})

	logger.Info("fetching catalog", "url", cfg.URL)
	records, err := catalog.Load(ctx, cfg.URL, fetch)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed catalog", "records", len(records))

	dict, err := dictionary.Build(records, cfg.Retired)
	if err != nil {
		return nil, fmt.Errorf("failed to build dictionary: %w", err)
	}
	stats := dict.Stats()
	logger.Info("built dictionary", "owners", stats.Owners, "tags", stats.Tags)
	return dict, nil
}
