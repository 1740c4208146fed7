package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Houeta/lot-watch/internal/config"
	"github.com/Houeta/lot-watch/internal/fetcher"
	"github.com/Houeta/lot-watch/internal/notifier"
	"github.com/Houeta/lot-watch/internal/query"
	"github.com/Houeta/lot-watch/internal/repository/jsonfile"
	"github.com/Houeta/lot-watch/internal/services/watcher"
	"github.com/spf13/cobra"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown of in-flight fetches.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command-line surface: the query options, the price
// window, and the dry-run switch used while testing a query.
func newRootCmd() *cobra.Command {
	opts := config.Options{}
	storePath := ""

	cmd := &cobra.Command{
		Use:           "lot-watch",
		Short:         "Scrapes a dealership inventory site and alerts on newly listed vehicles",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, storePath)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.Years, "year", nil, "model year to search for (repeatable)")
	flags.StringArrayVar(&opts.Makes, "make", nil, "vehicle make to search for (repeatable)")
	flags.StringArrayVar(&opts.Models, "model", nil, "vehicle model to search for (repeatable)")
	flags.StringArrayVar(&opts.Styles, "style", nil, "body style to search for (repeatable)")
	flags.IntVar(&opts.PriceLow, "price-low", 0, "lower bound of the price window")
	flags.IntVar(&opts.PriceHigh, "price-high", 0, "upper bound of the price window")
	flags.StringVar(&opts.Search, "search", "", "free-text inventory search")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "compute and persist the diff without sending notifications")
	flags.StringVar(&storePath, "store", "", "override the persisted inventory file path")

	return cmd
}

// run executes one full discovery cycle and exits.
func run(ctx context.Context, opts config.Options, storePath string) error {
	cfg := config.MustLoad()
	cfg.Options = opts
	if storePath != "" {
		cfg.StorePath = storePath
	}

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	repo := jsonfile.NewRepository(logger, cfg.StorePath)
	pageFetcher := fetcher.NewFetcher(logger, cfg.HTTP.Timeout, cfg.HTTP.RPS)
	notifiers := buildNotifiers(logger, cfg)

	lotWatcher := watcher.NewWatcher(logger, pageFetcher, repo, notifiers, cfg.Origin)
	pages := query.BuildPages(cfg)

	logger.InfoContext(ctx, "Starting inventory run", "pages", len(pages), "store", cfg.StorePath)

	summary, err := lotWatcher.Run(ctx, pages)
	if err != nil {
		logger.ErrorContext(ctx, "Run failed", "error", err)
		return err
	}

	logger.InfoContext(ctx, "Run complete",
		"pages_fetched", summary.PagesFetched,
		"pages_failed", summary.PagesFailed,
		"snapshot", summary.SnapshotSize,
		"new_vehicles", len(summary.NewVehicles),
		"notify_failures", summary.NotifyFailures,
	)

	return nil
}

// buildNotifiers assembles the configured alert transports. The dry-run flag
// swaps in the silent sender so the diff is still computed and persisted.
func buildNotifiers(logger *slog.Logger, cfg *config.Config) []notifier.Notifier {
	if cfg.Options.DryRun {
		return []notifier.Notifier{notifier.NewNoop(logger)}
	}

	var notifiers []notifier.Notifier

	if cfg.Slack.WebhookURL != "" {
		notifiers = append(notifiers, notifier.NewSlack(logger, cfg.Slack.WebhookURL))
	}

	if cfg.Tg.Token != "" && cfg.Tg.ChatID != 0 {
		tg, err := notifier.NewTelegram(logger, cfg.Tg.Token, cfg.Tg.ChatID)
		if err != nil {
			logger.Error("Failed to init Telegram notifier, continuing without it", "error", err)
		} else {
			notifiers = append(notifiers, tg)
		}
	}

	if len(notifiers) == 0 {
		logger.Warn("No notifier configured, new vehicles will only be logged")
		notifiers = append(notifiers, notifier.NewNoop(logger))
	}

	return notifiers
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
