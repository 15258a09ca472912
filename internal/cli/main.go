package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Hcaziah/AudioClassifier/internal/config"
	"github.com/Hcaziah/AudioClassifier/internal/metrics"
)

const defaultConfigPath = "configs/config.yaml"

// Main builds the command tree and runs it.
func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "audioclassifier",
		Short:        "Split a recording at silence boundaries and review the clips",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", defaultConfigPath, "Path to configuration file")

	root.AddCommand(newSplitCmd())
	root.AddCommand(newClassifyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every
// command.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cmd.Context(), configPath)
	if err != nil {
		return nil, nil, err
	}

	return cfg, initLogger(cfg.Logging), nil
}

// initLogger creates the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// serveMetrics exposes the Prometheus registry when the config enables
// it. The listener runs for the remainder of the process.
func serveMetrics(cfg config.MetricsConfig, log *slog.Logger) *metrics.Metrics {
	m := metrics.NewMetrics()

	if cfg.Enabled {
		go func() {
			log.Info("metrics endpoint listening", slog.String("address", cfg.ListenAddr()))
			if err := http.ListenAndServe(cfg.ListenAddr(), promhttp.Handler()); err != nil {
				log.Error("metrics endpoint failed", slog.String("error", err.Error()))
			}
		}()
	}

	return m
}
