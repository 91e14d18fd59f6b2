package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/spf13/cobra"

	cachetoml "github.com/bnema/emetic/internal/adapters/cache/toml"
	"github.com/bnema/emetic/internal/adapters/transport/httpx"
	"github.com/bnema/emetic/internal/adapters/zeus"
	"github.com/bnema/emetic/internal/application"
	"github.com/bnema/emetic/internal/config"
	"github.com/bnema/emetic/internal/logging"
	"github.com/bnema/emetic/internal/ports"
)

type protocolCommand func(ctx context.Context, cfg config.Config, service *application.Service) error

type writerProgress struct {
	w io.Writer
}

// Step leaves the line open for the outcome, as in "try logging in... success".
func (p writerProgress) Step(message string) {
	_, _ = fmt.Fprint(p.w, message+" ")
}

func (p writerProgress) Done(outcome string) {
	_, _ = fmt.Fprintln(p.w, outcome)
}

func (p writerProgress) Note(message string) {
	_, _ = fmt.Fprintln(p.w, message)
}

func (a *app) configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultPath(a.homeDir)
}

// runProtocol loads config and cache, runs command through the service and
// writes the cache back whatever the outcome.
func (a *app) runProtocol(cmd *cobra.Command, args []string, command protocolCommand) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(a.configPath(args), cmd.InOrStdin(), a.homeDir)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.FilePath = cfg.LogPath
	logCfg.Stderr = cmd.ErrOrStderr()
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return exitWith(ExitConfig, "set up logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	password, err := a.password(ctx, cfg)
	if err != nil {
		return exitWith(ExitConfig, "resolve password: %w", err)
	}

	origin, err := originOf(cfg.BaseURL)
	if err != nil {
		return exitWith(ExitConfig, "config entry \"base_url\": %w", err)
	}

	cache, err := cachetoml.NewStore(cfg.CachePath, logger)
	if err != nil {
		return exitWith(ExitConfig, "open session cache: %w", err)
	}
	state, err := cache.Load(ctx)
	if err != nil {
		return err
	}

	clock := clockFunc(a.now)
	client := zeus.NewClient(
		httpx.Transport{BaseURL: cfg.BaseURL, HTTPClient: a.httpClient},
		state.Cookies,
		zeus.WithOrigin(origin),
		zeus.WithClock(clock),
		zeus.WithLogger(logger),
	)

	var progress ports.Progress = ports.NopProgress{}
	if cfg.Verbose {
		progress = writerProgress{w: cmd.OutOrStdout()}
	}
	service := application.NewService(client,
		application.Credentials{Username: cfg.Username, Password: password},
		state.Identity,
		clock,
		application.WithProgress(progress),
		application.WithLogger(logger),
	)

	defer func() {
		if err := cache.Save(ctx, service.State()); err != nil {
			logger.Warn("save session cache",
				slog.String("path", cache.Path()),
				slog.String("error", err.Error()),
			)
		}
	}()

	logger.Debug("command started", slog.String("command", cmd.Name()), slog.String("base_url", cfg.BaseURL))

	run := func(ctx context.Context) error {
		return command(ctx, cfg, service)
	}
	if enabled, _ := cmd.Flags().GetBool(spinnerFlag); enabled {
		return runSpinner(ctx, cmd.ErrOrStderr(), "Contacting "+origin+"...", run)
	}

	return run(ctx)
}

func (a *app) password(ctx context.Context, cfg config.Config) (string, error) {
	if cfg.Password != "" || cfg.PasswordRef == "" {
		return cfg.Password, nil
	}
	return a.secretStore.Get(ctx, cfg.PasswordRef)
}

func originOf(baseURL string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", baseURL)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}
