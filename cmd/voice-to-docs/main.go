package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"voice-to-docs/config"
	"voice-to-docs/internal/application"
	"voice-to-docs/internal/console"
	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra/anthropic"
	"voice-to-docs/internal/infra/audio"
	"voice-to-docs/internal/infra/gemini"
	"voice-to-docs/internal/infra/github"
	"voice-to-docs/internal/infra/openai"
	"voice-to-docs/internal/infra/whispercpp"
)

type options struct {
	configPath  string
	envFile     string
	apiKey      string
	device      int
	listDevices bool
	mode        string
	githubToken string
	githubRepo  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "voice-to-docs",
		Short:         "Record, transcribe, and convert speech to actionable engineering tasks",
		Long:          "Records audio from a microphone, transcribes it with whisper.cpp and rewrites the transcript into engineering requirements or GitHub issues.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			term := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			if err := run(cmd, opts, term); err != nil {
				reportError(term, err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to an optional YAML config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVarP(&opts.apiKey, "api-key", "k", "", "API key for the text generation service (or set ANTHROPIC_API_KEY)")
	flags.IntVarP(&opts.device, "device", "d", 0, "audio input device index (use --list-devices to see options)")
	flags.BoolVar(&opts.listDevices, "list-devices", false, "list available audio input devices and exit")
	flags.StringVarP(&opts.mode, "mode", "m", "", "operating mode: normal or agile-pm")
	flags.StringVar(&opts.githubToken, "github-token", "", "GitHub token for filing issues (or set GITHUB_TOKEN)")
	flags.StringVar(&opts.githubRepo, "github-repo", "", "GitHub repository as owner/repo (or set GITHUB_REPO)")

	return cmd
}

func run(cmd *cobra.Command, opts *options, term *console.Console) error {
	ctx := cmd.Context()

	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log, cmd.ErrOrStderr())
	backend := audio.NewPortAudioBackend(logger)

	if opts.listDevices {
		if err := backend.Start(); err != nil {
			return fmt.Errorf("starting audio: %w", err)
		}
		defer backend.Stop()
		return listDevices(backend, term, logger)
	}

	term.Success("Voice to Docs starting...")

	cfg.Apply(config.Overrides{
		APIKey:      opts.apiKey,
		Mode:        opts.mode,
		GitHubToken: opts.githubToken,
		GitHubRepo:  opts.githubRepo,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	mode, err := domain.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	if err := backend.Start(); err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}
	defer backend.Stop()

	var explicit *int
	if cmd.Flags().Changed("device") {
		explicit = &opts.device
	}
	device, err := application.NewDeviceSelector(backend, logger).Select(explicit, cfg.Audio.Device)
	if err != nil {
		return err
	}
	term.Success(fmt.Sprintf("Using audio device %s", device))

	stt, err := newRecognizer(cfg, logger)
	if err != nil {
		return err
	}

	assistant := application.NewAssistant(
		application.NewRecorder(backend, audio.NewWavFileWriter(cfg.Audio.TempDir), device, logger),
		application.NewTranscriber(stt, logger),
		application.NewRewriter(newGenerator(cfg), application.TemplateFor(mode, cfg.SystemPrompt)),
		newPublisher(ctx, cfg, mode, term, logger),
		term,
		mode,
		logger,
	)

	logger.Info("starting voice to docs", "mode", mode, "provider", cfg.Generation.Provider, "whisper", cfg.Whisper.Backend)

	if err := assistant.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			term.Success("Goodbye!")
			return nil
		}
		return err
	}
	return nil
}

func listDevices(backend application.AudioBackend, term *console.Console, logger *slog.Logger) error {
	devices, err := application.ListDevices(backend, logger)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return &domain.ConfigError{Msg: "no audio input devices found"}
	}

	term.Info("Available Audio Input Devices:")
	for _, d := range devices {
		term.Success(d.String())
	}
	term.Warn("\nUsage: voice-to-docs --device <index>")
	term.Warn("   or: export AUDIO_DEVICE=<index>")
	return nil
}

func newRecognizer(cfg *config.Config, logger *slog.Logger) (application.SpeechToText, error) {
	if cfg.Whisper.Backend == config.WhisperOpenAI {
		return openai.NewWhisperClient(cfg.OpenAI.APIKey), nil
	}

	cli := whispercpp.NewCLI(cfg.Whisper.Binary, cfg.Whisper.Model, cfg.Whisper.Threads, logger)
	if err := cli.CheckModel(); err != nil {
		return nil, err
	}
	return cli, nil
}

func newGenerator(cfg *config.Config) application.TextGenerator {
	if cfg.Generation.Provider == config.ProviderGemini {
		return gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	}
	return anthropic.NewClaudeClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
}

// newPublisher returns nil unless the mode publishes and the repository is
// reachable with the configured token.
func newPublisher(ctx context.Context, cfg *config.Config, mode domain.Mode, term *console.Console, logger *slog.Logger) *application.Publisher {
	if !mode.Publishes() {
		return nil
	}
	if !cfg.TrackerEnabled() {
		logger.Info("github integration disabled", "reason", "GITHUB_TOKEN or GITHUB_REPO not set")
		return nil
	}

	client, err := github.NewClient(cfg.GitHub.Token, cfg.GitHub.Repo, logger)
	if err == nil {
		err = client.Verify(ctx)
	}
	if err != nil {
		logger.Warn("github integration disabled", "error", err)
		return nil
	}

	term.Success(fmt.Sprintf("GitHub integration enabled for %s", cfg.GitHub.Repo))
	return application.NewPublisher(client, logger)
}

func reportError(term *console.Console, err error) {
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		term.Error(fmt.Sprintf("Unexpected error: %v", err))
		return
	}

	term.Error(fmt.Sprintf("Configuration Error: %v", err))
	switch {
	case cfgErr.Credential != "":
		term.Warn(fmt.Sprintf("Set your API key in .env file: %s=your-key-here", cfgErr.Credential))
	case strings.Contains(cfgErr.Msg, "audio device") || strings.Contains(cfgErr.Msg, "audio input devices"):
		term.Warn("List available devices: voice-to-docs --list-devices")
	}
}

func setupLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
