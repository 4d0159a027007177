package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/leereilly/Cinematerial/cinematerial"
	"github.com/leereilly/Cinematerial/config"
	"github.com/leereilly/Cinematerial/filter"
	"github.com/leereilly/Cinematerial/radarr"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       = zerolog.New(os.Stderr).With().Timestamp().Logger()
	client       *cinematerial.Client
	radarrClient *radarr.Client
	compiler     = filter.NewExprCompiler(filter.WithCache(32))

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinematerial",
	Short: "Look up movie posters on CineMaterial by IMDb ID or URL",
	Long: `cinematerial is a CLI for the CineMaterial poster API. It signs requests
with your API key and secret, looks up posters by IMDb movie ID or IMDb movie
URL and can filter the returned posters with expressions.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information shown by --version and used by update
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, built)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp loads the configuration and creates the API clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client, err = cinematerial.NewClient(cfg.Cinematerial.APIKey, cfg.Cinematerial.APISecret, logger,
		cinematerial.WithBaseURL(cfg.Cinematerial.BaseURL),
		cinematerial.WithTimeout(cfg.Cinematerial.Timeout),
		cinematerial.WithUserAgent(cfg.Cinematerial.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create CineMaterial client: %w", err)
	}

	if cfg.Radarr.Enabled {
		radarrClient, err = radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create Radarr client, continuing without library access")
		} else {
			logger.Debug().Str("url", cfg.Radarr.URL).Msg("Radarr integration enabled")
		}
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// posterFilter compiles the filter to apply to lookup results.
// Priority: --filter, then --preset, then filter.default_expression. A nil
// filter keeps every poster.
func posterFilter() (filter.Filter, error) {
	expression := filterExpr
	if expression == "" && preset != "" {
		p, err := cfg.Preset(preset)
		if err != nil {
			return nil, err
		}
		expression = p.Expression
	}
	if expression == "" {
		expression = cfg.Filter.DefaultExpression
	}
	if expression == "" {
		return nil, nil
	}

	f, err := compiler.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	logger.Debug().Str("filter", f.Expression()).Msg("Filtering posters")
	return f, nil
}

// addFilterFlags registers the poster filter flags on cmd
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "poster filter expression, e.g. 'Width >= 200 && Language == \"en\"'")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset poster filter from config")
	cmd.MarkFlagsMutuallyExclusive("filter", "preset")
}
