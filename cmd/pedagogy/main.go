// Package main implements the pedagogy CLI: generate lessons from the
// terminal, render saved payloads, and manage the local lesson library.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pedagogy-studio/internal/config"
	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/library"
	"github.com/pedagogy-studio/internal/logging"
	"github.com/pedagogy-studio/internal/render"
	"github.com/pedagogy-studio/internal/terminal"
	"github.com/pedagogy-studio/pkg/backend"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := &cli{}
	err := newRootCmd(c).ExecuteContext(ctx)
	c.close()
	if err != nil {
		os.Exit(1)
	}
}

// cli carries global flags and lazily built dependencies. Tests set the
// dependency fields directly.
type cli struct {
	format     string
	backendURL string
	dataDir    string
	verbose    bool

	cfg       *config.LiteConfig
	logger    *logrus.Logger
	catalog   domain.CatalogProvider
	generator domain.ContentGenerator
	store     library.Store
	closers   []func() error
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "pedagogy",
		Short: "Generate and browse lessons from the command line",
		Long: `pedagogy talks to the lesson generation backend and renders the results
in the terminal, the same way the studio web app does.

Settings come from PEDAGOGY_* environment variables; the flags below
override them.

Examples:
  # Show the available pedagogies
  pedagogy list

  # Generate a Bloom's taxonomy lesson and keep it
  pedagogy generate blooms_taxonomy --topic photosynthesis --param level=intermediate --save

  # Render a saved backend payload as Markdown
  pedagogy render socratic_questioning lesson.json --format markdown`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := terminal.ParseFormat(c.format)
			return err
		},
	}

	root.PersistentFlags().StringVarP(&c.format, "format", "f", "terminal", "Output format: terminal, markdown, json or yaml")
	root.PersistentFlags().StringVar(&c.backendURL, "backend", "", "Generation backend URL (overrides PEDAGOGY_BACKEND_URL)")
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "Lesson library directory (overrides PEDAGOGY_DATA_DIR)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log backend traffic to stderr")

	root.AddCommand(newListCmd(c))
	root.AddCommand(newGenerateCmd(c))
	root.AddCommand(newRenderCmd(c))
	root.AddCommand(newLessonsCmd(c))
	root.AddCommand(newMCPCmd(c))
	return root
}

func (c *cli) config() *config.LiteConfig {
	if c.cfg == nil {
		c.cfg = config.LoadLiteConfig()
		if c.backendURL != "" {
			c.cfg.BackendURL = c.backendURL
		}
		if c.dataDir != "" {
			c.cfg.DataDir = c.dataDir
		}
	}
	return c.cfg
}

func (c *cli) log() *logrus.Logger {
	if c.logger == nil {
		cfg := c.config()
		level := "warn"
		if c.verbose {
			level = cfg.LogLevel
		}
		c.logger = logging.NewWriter(level, "text", os.Stderr)
	}
	return c.logger
}

// backend builds the generator and catalog on first use.
func (c *cli) backend() {
	if c.generator != nil && c.catalog != nil {
		return
	}
	cfg := c.config()
	client := backend.NewClient(domain.BackendConfig{
		BaseURL:   cfg.BackendURL,
		Timeout:   cfg.BackendTimeout,
		UserAgent: "pedagogy-cli/" + version,
	}, c.log())
	if c.generator == nil {
		c.generator = client
	}
	if c.catalog == nil {
		cache := backend.NewMemoryCatalogCache(cfg.CacheMaxItems, cfg.CacheTTL)
		c.catalog = backend.NewCatalogService(client, cache, cfg.BackendURL, c.log())
	}
}

func (c *cli) library() (library.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg := c.config()
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := library.NewSQLiteStore(cfg.LibraryDBPath())
	if err != nil {
		return nil, err
	}
	c.store = store
	c.closers = append(c.closers, store.Close)
	return store, nil
}

func (c *cli) close() {
	for _, fn := range c.closers {
		if err := fn(); err != nil && c.logger != nil {
			c.logger.WithError(err).Warn("Cleanup failed")
		}
	}
	c.closers = nil
}

func (c *cli) outputFormat() terminal.Format {
	f, _ := terminal.ParseFormat(c.format)
	return f
}

// printView writes v in the selected format.
func (c *cli) printView(w io.Writer, v *render.View) error {
	r := &terminal.Renderer{}
	if c.outputFormat() == terminal.FormatTerminal {
		var err error
		if r, err = terminal.NewRenderer(); err != nil {
			return err
		}
	}
	out, err := r.Render(v, c.outputFormat())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// emit writes structured output as JSON or YAML. It reports false for the
// text formats so the caller can print a table instead.
func (c *cli) emit(w io.Writer, v any) (bool, error) {
	switch c.outputFormat() {
	case terminal.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case terminal.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	}
	return false, nil
}
