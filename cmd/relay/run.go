package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
	"lumos-hq/relay/pkg/cli"
	"lumos-hq/relay/pkg/config"
	"lumos-hq/relay/pkg/prompt"
	"lumos-hq/relay/pkg/providers"
	"lumos-hq/relay/pkg/registry"
	"lumos-hq/relay/pkg/router"
	"lumos-hq/relay/pkg/server"
	"lumos-hq/relay/pkg/session"
	"lumos-hq/relay/pkg/telemetry/metrics"
	"lumos-hq/relay/pkg/transcript"
	"lumos-hq/relay/pkg/transport/telegram"
)

var runFlags struct {
	mode     string
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Relay bot",
	Long: `Start the Relay bot with the specified configuration.

In polling mode the bot long-polls the Telegram Bot API for updates. In
webhook mode it registers a webhook and serves updates over HTTP. Both
modes serve health and metrics endpoints.

Examples:
  # Start with default config
  relay run

  # Start with custom config
  relay run --config /etc/relay/config.yaml

  # Force polling mode
  relay run --mode polling

  # Validate config without starting the bot
  relay run --dry-run`,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.mode, "mode", "", "override update delivery mode (polling, webhook)")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the bot")
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.mode != "" {
		cfg.Telegram.Mode = runFlags.mode
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	setupLogging(cfg.Telemetry.Logging)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Relay v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	ctx := cli.SetupSignalHandler()

	// Providers
	providerConfigs := make([]providers.ProviderConfig, 0, len(cfg.Providers))
	for name, pc := range cfg.Providers {
		providerConfigs = append(providerConfigs, providers.ProviderConfig{
			Name:    name,
			Type:    pc.Type,
			BaseURL: pc.BaseURL,
			APIKey:  pc.APIKey,
			Model:   pc.Model,
			Timeout: pc.Timeout,
		})
	}
	reg, err := registry.NewFromConfigs(cfg.Router.DefaultProvider, providerConfigs)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize providers: %w", err))
	}
	defer reg.Close()
	fmt.Printf("✓ Providers initialized (%d providers)\n", len(reg.Names()))

	// System prompt
	prompts, promptCleanup, err := setupPrompt(ctx, cfg.Router)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer promptCleanup()

	// Sessions
	store := session.NewStore(cfg.Router.DefaultProvider, reg.Has)

	// Metrics
	collector := metrics.NewCollector(nil)

	routerOpts := []router.Option{router.WithObserver(collector.Observer())}

	// Transcripts
	if *cfg.Transcript.Enabled {
		slog.Info("initializing transcript recording", "backend", cfg.Transcript.Backend)

		var storage transcript.Storage
		switch cfg.Transcript.Backend {
		case "sqlite":
			storage, err = transcript.NewSQLiteStorage(&transcript.SQLiteConfig{
				Path: cfg.Transcript.SQLitePath,
			})
			if err != nil {
				return cli.NewCommandError("run", fmt.Errorf("failed to create SQLite storage: %w", err))
			}
		case "memory":
			storage = transcript.NewMemoryStorage()
		default:
			return fmt.Errorf("unsupported transcript backend: %s", cfg.Transcript.Backend)
		}
		defer storage.Close()

		recorder := transcript.NewRecorder(storage, &transcript.Config{
			Enabled:          true,
			AsyncBuffer:      cfg.Transcript.AsyncBuffer,
			WriteTimeout:     cfg.Transcript.WriteTimeout,
			MaxPreviewLength: cfg.Transcript.MaxPreviewLength,
		})
		defer recorder.Close()
		routerOpts = append(routerOpts, router.WithObserver(recorder))

		if cfg.Transcript.PruneSchedule != "" {
			pruner := transcript.NewPruner(storage, &transcript.RetentionConfig{
				RetentionDays: cfg.Transcript.RetentionDays,
				PruneSchedule: cfg.Transcript.PruneSchedule,
			})
			if err := pruner.Start(ctx); err != nil {
				slog.Warn("failed to start retention scheduler", "error", err)
			} else {
				defer pruner.Stop()
			}
		}

		fmt.Println("✓ Transcript store initialized")
	}

	rtr := router.New(reg, store, prompts, routerOpts...)

	// Session gauge updater
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collector.SetActiveSessions(store.Len())
			}
		}
	}()

	// Telegram transport
	client, err := telegram.NewClient(telegram.ClientConfig{Token: cfg.Telegram.Token})
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	binding := telegram.NewBinding(rtr, client, telegram.BindingConfig{
		MessageLimit: cfg.Telegram.MessageLimit,
		Chunks:       collector,
	})

	// HTTP server for health, metrics, and (in webhook mode) updates
	serverOpts := []server.Option{}
	if *cfg.Telemetry.Metrics.Enabled {
		serverOpts = append(serverOpts, server.WithMetrics(cfg.Telemetry.Metrics.Path, collector.Handler()))
	}

	switch cfg.Telegram.Mode {
	case "webhook":
		return runWebhook(ctx, cfg, client, binding, serverOpts)
	default:
		return runPolling(ctx, cfg, client, binding, serverOpts)
	}
}

// runPolling long-polls for updates while serving operational endpoints
// in the background.
func runPolling(ctx context.Context, cfg *config.Config, client *telegram.Client, binding *telegram.Binding, serverOpts []server.Option) error {
	srv := server.NewServer(cfg.Server, serverOpts...)
	go func() {
		if err := srv.Start(ctx); err != nil {
			slog.Error("operational server failed", "error", err)
		}
	}()

	poller := telegram.NewPoller(client, binding, cfg.Telegram.PollTimeout)

	fmt.Printf("✓ Listening on %s (health, metrics)\n", cfg.Server.ListenAddress)
	fmt.Println("✓ Polling for updates")
	fmt.Println("\nPress Ctrl+C to stop")

	if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("\n✓ Bot stopped")
	return srv.Shutdown(context.Background())
}

// runWebhook registers the webhook and serves updates over HTTP.
func runWebhook(ctx context.Context, cfg *config.Config, client *telegram.Client, binding *telegram.Binding, serverOpts []server.Option) error {
	path, err := webhookPath(cfg.Telegram.WebhookURL)
	if err != nil {
		return cli.NewConfigError("telegram.webhook_url", err.Error())
	}

	if err := client.SetWebhook(ctx, cfg.Telegram.WebhookURL); err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to register webhook: %w", err))
	}
	defer func() {
		if err := client.DeleteWebhook(context.Background()); err != nil {
			slog.Warn("failed to delete webhook", "error", err)
		}
	}()

	serverOpts = append(serverOpts, server.WithWebhook(path, telegram.NewWebhookHandler(binding)))
	srv := server.NewServer(cfg.Server, serverOpts...)

	fmt.Printf("✓ Webhook registered at %s\n", path)
	fmt.Printf("✓ Listening on %s\n", cfg.Server.ListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("\n✓ Bot stopped")
	return nil
}

// webhookPath extracts the local route from the public webhook URL.
func webhookPath(webhookURL string) (string, error) {
	u, err := url.Parse(webhookURL)
	if err != nil {
		return "", fmt.Errorf("invalid webhook URL: %w", err)
	}
	if u.Path == "" || u.Path == "/" {
		return "/webhook", nil
	}
	return u.Path, nil
}

// setupLogging configures the default slog logger.
func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// setupPrompt builds the system prompt source. The cleanup function
// stops the file watcher when one is running.
func setupPrompt(ctx context.Context, cfg config.RouterConfig) (prompt.Source, func(), error) {
	if cfg.SystemPromptFile == "" {
		return prompt.Static(cfg.SystemPrompt), func() {}, nil
	}

	fs, err := prompt.NewFileSource(cfg.SystemPromptFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load system prompt: %w", err)
	}
	if !cfg.WatchPromptFile {
		return fs, func() {}, nil
	}

	go func() {
		if err := fs.Watch(ctx); err != nil {
			slog.Error("prompt watcher failed", "error", err)
		}
	}()
	return fs, fs.Stop, nil
}
