package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/codalotl/redline/internal/config"
	"github.com/codalotl/redline/internal/diff"
	"github.com/codalotl/redline/internal/document"
	qcli "github.com/codalotl/redline/internal/q/cli"
	"github.com/codalotl/redline/internal/server"
	"github.com/codalotl/redline/internal/watch"
)

type configState struct {
	once     sync.Once
	path     *string
	logLevel *string
	cfg      *config.Config
	err      error
}

func (s *configState) get(c *qcli.Context) (*config.Config, error) {
	s.once.Do(func() {
		s.cfg, s.err = s.load(c)
	})
	return s.cfg, s.err
}

func (s *configState) load(c *qcli.Context) (*config.Config, error) {
	cfg := config.Default()
	if *s.path != "" {
		loaded, err := config.Load(*s.path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.Flags.Changed("log-level") {
		cfg.Server.LogLevel = config.LogLevel(*s.logLevel)
		if err := config.Validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

func newRootCommand() *qcli.Command {
	cfgState := &configState{}

	root := &qcli.Command{
		Name:  "redline",
		Short: "redline shows word-level diffs between an original text and its corrected version.",
	}
	cfgState.path = root.PersistentFlags().String("config", "", "YAML configuration file")
	cfgState.logLevel = root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from config, else info)")

	runWithConfig := func(next func(c *qcli.Context, cfg *config.Config) error) qcli.RunFunc {
		return func(c *qcli.Context) error {
			cfg, err := cfgState.get(c)
			if err != nil {
				return qcli.ExitError{Code: 1, Err: err}
			}
			slog.SetDefault(newLogger(cfg.Server.LogLevel, c.Err))
			return next(c, cfg)
		}
	}

	diffCmd := &qcli.Command{
		Name:  "diff",
		Short: "Diff two texts word by word",
		Long: `Compares ORIGINAL with CORRECTED and prints the word-level diff.

With --patches, the diff is aligned to the edits that produced CORRECTED, so a replaced phrase shows as one deletion and one insertion.
Either input may be "-" to read stdin.`,
		Example: `redline diff draft.txt final.txt
redline diff --patches edits.json --format side draft.txt final.txt
cat draft.txt | redline diff --format json - final.txt`,
		Args: qcli.ExactArgs(2),
	}
	diffFlags := addRenderFlags(diffCmd.Flags(), "Output format: inline, side, json, views")
	diffMaxTokens := diffCmd.Flags().Int("max-tokens", 0, "Reject texts with more tokens than this (default from config; 0 disables)")
	diffStats := diffCmd.Flags().Bool("stats", false, "Print word counts of unchanged, inserted, and deleted words to stderr")
	diffCmd.Run = runWithConfig(func(c *qcli.Context, cfg *config.Config) error {
		if err := checkFormat(*diffFlags.format, formatInline, formatSide, formatJSON, formatViews); err != nil {
			return err
		}
		opts, err := diffFlags.options(c, cfg)
		if err != nil {
			return err
		}
		maxTokens := cfg.Limits.MaxTokens
		if c.Flags.Changed("max-tokens") {
			maxTokens = *diffMaxTokens
		}

		original, corrected, err := readInputs(c.In, c.Args[0], c.Args[1])
		if err != nil {
			return err
		}
		patches, err := loadPatches(*diffFlags.patches, cfg.Limits.MaxPatches)
		if err != nil {
			return err
		}
		if err := diff.CheckLimit(maxTokens, string(original), string(corrected)); err != nil {
			return err
		}

		ops := diff.Reconcile(string(original), string(corrected), patches)
		slog.Debug("diff computed", "ops", len(ops), "patches", len(patches))
		if err := writeDiff(c.Out, *diffFlags.format, ops, opts); err != nil {
			return err
		}
		if *diffStats {
			return writeStats(c.Err, diff.CountStats(ops))
		}
		return nil
	})

	docCmd := &qcli.Command{
		Name:    "doc",
		Aliases: []string{"document"},
		Short:   "Diff the string fields of two JSON documents",
		Long: `Compares two JSON documents and prints, as JSON, a word-level diff of every string field that changed.

Patches apply to the field named by their "path" (a JSON Pointer such as /sections/0/text, or dotted such as sections.0.text). Patches without a path apply to every field.`,
		Example: `redline doc --patches edits.json article.json corrected.json`,
		Args:    qcli.ExactArgs(2),
	}
	docPatches := docCmd.Flags().StringP("patches", "p", "", "JSON file of patches (before/after records) used to align the diff")
	docWorkers := docCmd.Flags().Int("workers", 0, "Fields diffed concurrently (default from config)")
	docCmd.Run = runWithConfig(func(c *qcli.Context, cfg *config.Config) error {
		workers := cfg.Document.Workers
		if c.Flags.Changed("workers") {
			if *docWorkers < 1 {
				return qcli.Usagef("--workers must be at least 1")
			}
			workers = *docWorkers
		}

		original, corrected, err := readInputs(c.In, c.Args[0], c.Args[1])
		if err != nil {
			return err
		}
		patches, err := loadPatches(*docPatches, cfg.Limits.MaxPatches)
		if err != nil {
			return err
		}

		res, err := document.Diff(c.Context, original, corrected, patches,
			document.WithWorkers(workers),
			document.WithMaxTokens(cfg.Limits.MaxTokens),
		)
		if err != nil {
			return err
		}
		return writeJSON(c.Out, res)
	})

	serveCmd := &qcli.Command{
		Name:  "serve",
		Short: "Serve the diff API over HTTP",
		Long:  "Serves POST /api/v1/diff, POST /api/v1/document-diff, and GET /healthz until interrupted.",
		Args:  qcli.NoArgs,
	}
	serveAddr := serveCmd.Flags().String("addr", "", "Listen address (default from config, else :8080)")
	serveCmd.Run = runWithConfig(func(c *qcli.Context, cfg *config.Config) error {
		if c.Flags.Changed("addr") {
			cfg.Server.ListenAddr = *serveAddr
		}
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("redline starting", "version", Version, "listen_addr", cfg.Server.ListenAddr, "log_level", cfg.Server.LogLevel)
		return server.New(cfg, slog.Default()).Run(ctx)
	})

	watchCmd := &qcli.Command{
		Name:    "watch",
		Short:   "Re-render the diff whenever the inputs change",
		Example: `redline watch --format side --patches edits.json draft.txt final.txt`,
		Args:    qcli.ExactArgs(2),
	}
	watchFlags := addRenderFlags(watchCmd.Flags(), "Output format: inline, side")
	watchCmd.Run = runWithConfig(func(c *qcli.Context, cfg *config.Config) error {
		if err := checkFormat(*watchFlags.format, formatInline, formatSide); err != nil {
			return err
		}
		if c.Args[0] == stdinArg || c.Args[1] == stdinArg {
			return qcli.Usagef("watch needs files, not stdin")
		}
		opts, err := watchFlags.options(c, cfg)
		if err != nil {
			return err
		}

		render := func() error {
			original, corrected, err := readInputs(c.In, c.Args[0], c.Args[1])
			if err != nil {
				return err
			}
			patches, err := loadPatches(*watchFlags.patches, cfg.Limits.MaxPatches)
			if err != nil {
				return err
			}
			if err := diff.CheckLimit(cfg.Limits.MaxTokens, string(original), string(corrected)); err != nil {
				return err
			}
			if opts.Color {
				if err := writeString(c.Out, clearScreen); err != nil {
					return err
				}
			}
			return writeDiff(c.Out, *watchFlags.format, diff.Reconcile(string(original), string(corrected), patches), opts)
		}
		if err := render(); err != nil {
			return err
		}

		paths := []string{c.Args[0], c.Args[1]}
		if *watchFlags.patches != "" {
			paths = append(paths, *watchFlags.patches)
		}
		w, err := watch.New(paths, func(context.Context) error { return render() })
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return w.Run(ctx)
	})

	versionCmd := &qcli.Command{
		Name:  "version",
		Short: "Print the redline version",
		Args:  qcli.NoArgs,
		Run: func(c *qcli.Context) error {
			return writeStringln(c.Out, "redline "+Version)
		},
	}

	helpCmd := &qcli.Command{
		Name:  "help",
		Short: "Show help for redline or one of its commands",
		Args:  qcli.RangeArgs(0, 1),
		Run: func(c *qcli.Context) error {
			target := root
			if len(c.Args) == 1 {
				if target = root.Lookup(c.Args[0]); target == nil {
					return qcli.Usagef("unknown command: %s", c.Args[0])
				}
			}
			qcli.WriteHelp(c.Out, target)
			return nil
		},
	}

	root.AddCommand(diffCmd, docCmd, serveCmd, watchCmd, versionCmd, helpCmd)
	return root
}
