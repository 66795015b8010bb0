package updater

import (
	"context"
	"net/http"

	"github.com/chyehsia/npp-updater/internal/config"
	"github.com/chyehsia/npp-updater/internal/logger"
	"github.com/chyehsia/npp-updater/internal/repository/install"
	"github.com/chyehsia/npp-updater/internal/service/github"
)

// Options are inputs accepted by the updater entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// CheckOnly reports the update decision without downloading or
	// installing anything.
	CheckOnly bool
}

// Run executes the update pipeline and is the public entry point for
// the CLI. It loads the configuration, wires the real collaborators
// (host registry store, release registry client, HTTP transport) and
// delegates to the Service.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "npp-updater")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.ErrorKV(ctx, "Could not load settings", "error", err)
		return err
	}

	// One bounded client shared by the resolver and the fetcher; each
	// network call is attempted once and cannot stall past the timeout.
	httpClient := &http.Client{Timeout: cfg.Timeout}

	service := NewService(
		cfg,
		install.NewProber(install.NewStore(), cfg.AppName),
		github.NewClient(httpClient, cfg.APIBaseURL, cfg.ReleaseOwner, cfg.ReleaseRepo),
		NewFetcher(httpClient, cfg.DownloadDir),
		NewExecutor(),
		opts.CheckOnly,
	)

	if err = service.Run(ctx); err != nil {
		logger.ErrorKV(ctx, "Update run failed", "error", err)
		return err
	}

	logger.Info(ctx, "Updater completed")

	return nil
}
