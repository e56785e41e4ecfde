// Package main is the homematch CLI entry point.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/homematch/internal/cli"
	"github.com/hyperjump/homematch/internal/config"
	"github.com/hyperjump/homematch/internal/dataset"
	"github.com/hyperjump/homematch/internal/models"
	"github.com/hyperjump/homematch/internal/ranking"
	"github.com/hyperjump/homematch/internal/search"
	"github.com/hyperjump/homematch/internal/session"
	"github.com/hyperjump/homematch/pkg/utils"
)

var version = "dev"

const defaultConfigName = "config.yaml"

// loadConfig loads config from path. When path is empty, config.yaml in the
// current directory is used if present; otherwise built-in defaults apply.
// Returns the config and the path that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config.Default(), "", nil
		}
		fallback := filepath.Join(cwd, defaultConfigName)
		if _, statErr := os.Stat(fallback); statErr != nil {
			return config.Default(), "", nil
		}
		path = fallback
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app holds state shared by subcommands after config is loaded.
type app struct {
	configPath string
	debug      bool

	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *search.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "homematch",
		Short:        "Filter and rank rental listings by photo-derived features",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "features" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (default ./config.yaml if present)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(a.newSearchCmd())
	root.AddCommand(a.newBatchCmd())
	root.AddCommand(a.newImportCmd())
	root.AddCommand(newFeaturesCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func (a *app) setup() error {
	cfg, resolved, err := loadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	debugMode := cfg.Debug || a.debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("config loaded",
		zap.String("config_path", resolved),
		zap.String("dataset", cfg.Dataset.Path),
		zap.Bool("debug", debugMode),
	)

	a.registry = prometheus.NewRegistry()
	a.metrics = search.NewMetrics()
	return a.metrics.Register(a.registry)
}

func (a *app) teardown() error {
	if a.logger != nil {
		defer func() { _ = a.logger.Sync() }()
	}
	if a.cfg == nil || a.cfg.Metrics.TextfilePath == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.Metrics.TextfilePath, a.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// newEngine loads the dataset and builds a search engine over it.
func (a *app) newEngine(ctx context.Context, path string) (*search.Engine, error) {
	if path == "" {
		path = a.cfg.Dataset.Path
	}
	listings, err := dataset.Load(ctx, path, &a.cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	opts := []search.EngineOption{
		search.WithLogger(a.logger),
		search.WithMetrics(a.metrics),
	}
	if info, err := dataset.Stat(path); err == nil {
		opts = append(opts, search.WithDataUpdated(info.ModTime))
	}
	a.logger.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("listings", len(listings)),
	)
	return search.NewEngine(listings, ranking.NewRanker(&a.cfg.Ranking), &a.cfg.Search, &a.cfg.Display, opts...), nil
}

// --- search command ---

type searchOptions struct {
	datasetPath          string
	minRent              int
	maxRent              int
	postcode             string
	bedrooms             int
	requirePhotos        bool
	requireBedroomPhotos bool
	excludeRooms         bool
	excludePlatforms     []string
	topRated             bool
	preferences          []string
	jsonOutput           bool
}

func (a *app) newSearchCmd() *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search listings with hard filters and ordered feature preferences",
		Example: `  homematch search --max-rent 1500 --postcode NW1 --prefer "Natural Light" --prefer fireplace
  homematch search --bedrooms 2 --exclude-platform Rightmove --top-rated --prefer high_ceiling`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := opts.query(cmd, a.cfg.Search.Defaults.Filters())
			if err != nil {
				return err
			}
			engine, err := a.newEngine(cmd.Context(), opts.datasetPath)
			if err != nil {
				return err
			}
			response, err := engine.Search(query)
			if err != nil {
				return err
			}
			notices := session.New().Record(response)
			return cli.WriteSearchResults(cmd.OutOrStdout(), response, notices, outputFormat(opts.jsonOutput))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.datasetPath, "dataset", "", "dataset file (overrides config)")
	f.IntVar(&opts.minRent, "min-rent", 0, "minimum monthly rent (default from config)")
	f.IntVar(&opts.maxRent, "max-rent", 0, "maximum monthly rent (default from config)")
	f.StringVar(&opts.postcode, "postcode", "", "postcode or area contained in the address")
	f.IntVar(&opts.bedrooms, "bedrooms", 0, "exact number of bedrooms, 0 for any (default from config)")
	f.BoolVar(&opts.requirePhotos, "require-photos", true, "hide listings with insufficient photos")
	f.BoolVar(&opts.requireBedroomPhotos, "require-bedroom-photos", true, "hide listings with few bedroom photos")
	f.BoolVar(&opts.excludeRooms, "exclude-rooms", true, "hide room rentals")
	f.StringSliceVar(&opts.excludePlatforms, "exclude-platform", nil, "platform to exclude (repeatable)")
	f.BoolVar(&opts.topRated, "top-rated", false, "show only listings aligned at least at the top-rated threshold")
	f.StringSliceVarP(&opts.preferences, "prefer", "p", nil, "feature preference, most important first (repeatable)")
	f.BoolVar(&opts.jsonOutput, "json", false, "output results as JSON")
	return cmd
}

// query builds the search query: config defaults, overridden by flags the user set.
func (o *searchOptions) query(cmd *cobra.Command, defaults models.Filters) (*models.SearchQuery, error) {
	prefs, err := models.ParsePreferences(o.preferences)
	if err != nil {
		return nil, err
	}
	filters := defaults
	changed := cmd.Flags().Changed
	if changed("min-rent") {
		filters.MinRent = o.minRent
	}
	if changed("max-rent") {
		filters.MaxRent = o.maxRent
	}
	if changed("bedrooms") {
		filters.Bedrooms = o.bedrooms
	}
	if changed("require-photos") {
		filters.RequirePhotos = o.requirePhotos
	}
	if changed("require-bedroom-photos") {
		filters.RequireBedroomPhotos = o.requireBedroomPhotos
	}
	if changed("exclude-rooms") {
		filters.ExcludeRooms = o.excludeRooms
	}
	if changed("top-rated") {
		filters.TopRatedOnly = o.topRated
	}
	filters.Postcode = o.postcode
	filters.ExcludePlatforms = o.excludePlatforms
	return &models.SearchQuery{Preferences: prefs, Filters: filters}, nil
}

func outputFormat(jsonOutput bool) cli.SearchOutputFormat {
	if jsonOutput {
		return cli.OutputJSON
	}
	return cli.OutputText
}

// --- batch command ---

func (a *app) newBatchCmd() *cobra.Command {
	var datasetPath string
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "batch [queries.ndjson]",
		Short: "Run newline-delimited JSON queries in one session (stdin when no file or \"-\")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening queries: %w", err)
				}
				defer f.Close()
				in = f
			}
			engine, err := a.newEngine(cmd.Context(), datasetPath)
			if err != nil {
				return err
			}
			return a.runBatch(cmd.Context(), engine, in, cmd.OutOrStdout(), cmd.ErrOrStderr(), outputFormat(jsonOutput))
		},
	}
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "dataset file (overrides config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output results as JSON")
	return cmd
}

// runBatch executes one query per non-blank input line. Fields a line omits
// take their config defaults. Rejected queries are reported on errOut and do
// not count as session searches.
func (a *app) runBatch(ctx context.Context, engine *search.Engine, in io.Reader, out, errOut io.Writer, format cli.SearchOutputFormat) error {
	sess := session.New()
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var total, rejected int
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		total++

		query := &models.SearchQuery{Filters: a.cfg.Search.Defaults.Filters()}
		if err := json.Unmarshal([]byte(text), query); err != nil {
			rejected++
			fmt.Fprintf(errOut, "line %d: invalid query: %v\n", line, err)
			continue
		}
		response, err := engine.Search(query)
		if err != nil {
			rejected++
			fmt.Fprintf(errOut, "line %d: %v\n", line, err)
			continue
		}
		if err := cli.WriteSearchResults(out, response, sess.Record(response), format); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading queries: %w", err)
	}
	a.logger.Info("batch complete",
		zap.String("session_id", sess.ID),
		zap.Int("queries", total),
		zap.Int("rejected", rejected),
	)
	if rejected > 0 {
		return fmt.Errorf("%d of %d queries rejected", rejected, total)
	}
	return nil
}

// --- import command ---

func (a *app) newImportCmd() *cobra.Command {
	var table string
	cmd := &cobra.Command{
		Use:   "import <source.csv|source.xlsx> <target.db>",
		Short: "Import a CSV or XLSX dataset into a SQLite database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := dataset.Open(args[0], &a.cfg.Dataset)
			if err != nil {
				return err
			}
			if _, ok := src.(*dataset.SQLiteSource); ok {
				return errors.New("source is already a SQLite database")
			}
			if table == "" {
				table = a.cfg.Dataset.Table
			}
			n, err := dataset.ImportFile(cmd.Context(), src, args[1], table)
			if err != nil {
				return err
			}
			a.logger.Info("dataset imported",
				zap.String("source", args[0]),
				zap.String("target", args[1]),
				zap.Int("listings", n),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s listings into %s\n", humanize.Comma(int64(n)), args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "target table (default from config)")
	return cmd
}

// --- features and version ---

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the features that can be used as preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.WriteFeatures(cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "homematch version", version)
		},
	}
}
