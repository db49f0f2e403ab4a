package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/oppsim/internal/ai"
	"github.com/amishk599/oppsim/internal/config"
	"github.com/amishk599/oppsim/internal/console"
	"github.com/amishk599/oppsim/internal/driver"
	"github.com/amishk599/oppsim/internal/input"
	"github.com/amishk599/oppsim/internal/report"
)

var (
	cfgPath       string
	debug         bool
	useTUI        bool
	modelOverride string
)

var rootCmd = &cobra.Command{
	Use:   "oppsim [description1 description2]",
	Short: "Compare two business opportunities with an LLM",
	Long: "oppsim asks an LLM how similar two business-opportunity descriptions are and prints " +
		"a similarity percentage, a detailed analysis and a justification. With fewer than two " +
		"arguments it prompts for both descriptions.",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runCompare,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: OPPSIM_CONFIG env var or ./oppsim.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&useTUI, "tui", false, "enter descriptions in a multi-line editor")
	rootCmd.Flags().StringVar(&modelOverride, "model", "", "override the configured model id")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > OPPSIM_CONFIG env var > "./oppsim.yaml"
func loadConfig(path string) (*config.Config, error) {
	return config.Resolve(path, os.Getenv("OPPSIM_CONFIG"), "oppsim.yaml")
}

// setupLogger logs to stderr; stdout is reserved for the report.
func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// runOptions describes the process environment the driver is wired to.
type runOptions struct {
	args    []string
	tui     bool
	in      io.Reader
	out     io.Writer
	color   bool // stdout is a terminal
	spinner bool // stderr is a terminal
}

func buildDriver(cfg *config.Config, opts runOptions, logger *slog.Logger) *driver.Driver {
	httpClient := &http.Client{Timeout: cfg.LLM.Timeout}
	provider := ai.NewOpenAIProvider(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature, httpClient)
	comparator := ai.NewLLMComparator(provider, ai.ComparisonTemplate, logger)

	var interactive input.Source = input.NewPromptSource(opts.in, opts.out)
	if opts.tui {
		interactive = input.TUISource{In: opts.in, Out: opts.out}
	}

	d := &driver.Driver{
		Source:     input.Select(opts.args, interactive),
		Comparator: comparator,
		Out:        opts.out,
		Report:     report.Options{Color: opts.color},
		Logger:     logger,
	}
	if opts.spinner {
		d.Progress = func(label string, work func()) error {
			return console.RunWithSpinner(label, os.Stderr, work)
		}
	}
	return d
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if modelOverride != "" {
		cfg.LLM.Model = modelOverride
	}

	logger.Debug("config loaded",
		"base_url", cfg.LLM.BaseURL,
		"model", cfg.LLM.Model,
		"temperature", cfg.LLM.Temperature,
		"timeout", cfg.LLM.Timeout.String(),
		"api_key_set", cfg.LLM.APIKey != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := buildDriver(cfg, runOptions{
		args:    args,
		tui:     useTUI,
		in:      os.Stdin,
		out:     os.Stdout,
		color:   console.IsTerminal(os.Stdout),
		spinner: console.IsTerminal(os.Stderr),
	}, logger)

	// A failed comparison still exits 0; only unreadable input is fatal.
	if _, err := d.Run(ctx); err != nil {
		logger.Error("comparison aborted", "error", err)
		os.Exit(1)
	}
	return nil
}
