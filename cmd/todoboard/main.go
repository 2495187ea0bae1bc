package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/todoboard/internal/app"
	"github.com/nhle/todoboard/internal/logging"
	"github.com/nhle/todoboard/internal/model"
	"github.com/nhle/todoboard/internal/source/placeholder"
)

var (
	// Global flags
	cfgFile string
	logFile string
	verbose bool

	// Loaded by setup before any subcommand runs.
	cfg    *model.AppConfig
	logger *zap.Logger
)

// rootCmd launches the interactive table.
var rootCmd = &cobra.Command{
	Use:   "todoboard",
	Short: "Browse, search and prune todos from a REST API",
	Long: `todoboard fetches todos and their owners from a JSONPlaceholder-style
REST API and shows them in a searchable table.

Search is a case-sensitive substring match on titles. Deleting a row only
hides it locally; a refresh brings it back.

Run without arguments to start the interactive table.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.config/todoboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: log.file from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = model.DefaultConfigPath()
	}

	var err error
	cfg, err = model.LoadConfig(path)
	if err != nil {
		return err
	}

	logger, err = logging.New(logTarget(cmd), cfg.Log.Level, verbose)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		zap.String("config", path),
		zap.String("base_url", cfg.Source.BaseURL),
	)
	return nil
}

// logTarget picks the log destination for cmd. --log-file always wins;
// otherwise the interactive UI logs to the configured file and every
// other command logs to stderr.
func logTarget(cmd *cobra.Command) string {
	if logFile != "" {
		return logFile
	}
	if !cmd.HasParent() {
		return cfg.Log.File
	}
	return ""
}

// loadTimeout bounds one collection load: every attempt may use the
// full request timeout and every retry may wait the longest backoff.
// Zero leaves loads unbounded, as when no request timeout is set.
func loadTimeout(src model.SourceConfig) time.Duration {
	if src.TimeoutSec <= 0 {
		return 0
	}
	attempts := time.Duration(src.MaxRetries + 1)
	perRequest := time.Duration(src.TimeoutSec) * time.Second
	return attempts*perRequest + time.Duration(src.MaxRetries)*placeholder.MaxBackoff
}

func runInteractive(cmd *cobra.Command, args []string) error {
	src := placeholder.NewAdapter(cfg.Source, logger)
	root := app.New(src, app.Options{
		ConfirmDelete:   cfg.Display.ConfirmDelete,
		RefreshInterval: time.Duration(cfg.Display.RefreshIntervalSec) * time.Second,
		LoadTimeout:     loadTimeout(cfg.Source),
		Logger:          logger,
	})

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(commandContext(cmd)))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

// commandContext returns the command's context, or Background when the
// command was invoked directly rather than through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
