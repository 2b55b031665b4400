package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/backlog/internal/config"
	backlogerrors "github.com/lepinkainen/backlog/internal/errors"
	"github.com/lepinkainen/backlog/internal/metrics"
	"github.com/lepinkainen/backlog/internal/tracing"
)

// out receives command output meant for the user rather than the log.
var out io.Writer = os.Stdout

// CLI represents the complete command structure for the backlog application
type CLI struct {
	// Global flags
	Debug           bool   `help:"Enable debug logging"`
	MetricsTextfile string `help:"Write Prometheus metrics to this file after the command finishes" type:"path"`
	TracingEndpoint string `help:"OTLP gRPC endpoint for traces (defaults to tracing.endpoint or OTEL_EXPORTER_OTLP_ENDPOINT)"`
	Overwrite       bool   `help:"Overwrite existing notes"`
	UpdateCovers    bool   `help:"Re-download cover images even if they already exist"`

	Search    SearchCmd    `cmd:"" help:"Search the game catalog"`
	Add       AddCmd       `cmd:"" help:"Add a game to the backlog"`
	Dashboard DashboardCmd `cmd:"" help:"Rebuild the backlog index and show summary views"`
}

// Execute parses the command line and runs the selected command.
func Execute() {
	initLogging(false)
	initConfig()

	var cli CLI
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx := kong.Parse(&cli,
		kong.Name("backlog"),
		kong.Description("Curate a video game backlog in an Obsidian vault."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := run(ctx, kctx, &cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, kctx *kong.Context, cli *CLI) error {
	if cli.Debug {
		initLogging(true)
	}
	updateGlobalConfig(cli)

	shutdown, err := tracing.Setup(ctx, tracing.ConfigFromEndpoint(config.TracingEndpoint))
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	err = kctx.Run()
	if backlogerrors.IsStopProcessingError(err) {
		slog.Info("Stopped", "reason", err)
		err = nil
	}

	if config.MetricsTextfile != "" {
		if werr := metrics.WriteTextfile(config.MetricsTextfile); werr != nil {
			slog.Warn("Failed to write metrics", "path", config.MetricsTextfile, "error", werr)
		}
	}
	return err
}

func initConfig() {
	config.SetDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	bindings := map[string]string{
		"igdb.client_id":      "IGDB_CLIENT_ID",
		"igdb.client_secret":  "IGDB_CLIENT_SECRET",
		"steamgriddb.api_key": "STEAMGRIDDB_API_KEY",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			slog.Error("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	if cli.Overwrite {
		config.SetOverwriteFiles(true)
	}
	if cli.UpdateCovers {
		config.SetUpdateCovers(true)
	}
	if cli.MetricsTextfile != "" {
		config.MetricsTextfile = cli.MetricsTextfile
	}
	if cli.TracingEndpoint != "" {
		config.TracingEndpoint = cli.TracingEndpoint
	}
}

// backlogDir is the vault folder holding the game notes.
func backlogDir() string {
	return filepath.Join(config.VaultDir, config.VaultFolder)
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
