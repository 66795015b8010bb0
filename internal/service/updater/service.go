package updater

import (
	"context"
	"fmt"

	"github.com/chyehsia/npp-updater/internal/config"
	"github.com/chyehsia/npp-updater/internal/domain/release"
	"github.com/chyehsia/npp-updater/internal/logger"
)

// StateProber reads the installed state of the target application.
type StateProber interface {
	Probe(ctx context.Context) (release.InstalledState, error)
}

// ReleaseResolver returns the latest published release.
type ReleaseResolver interface {
	LatestRelease(ctx context.Context) (*release.Info, error)
}

// Service sequences the update pipeline:
// probe installed state, resolve the latest release, compare versions,
// and when an update is available, match, download and silently install
// the architecture-specific asset. Each stage runs exactly once per
// invocation and any stage failure terminates the run; re-running is
// the caller's concern.
type Service struct {
	cfg       *config.Config
	prober    StateProber
	resolver  ReleaseResolver
	fetcher   *Fetcher
	installer *Executor
	checkOnly bool
}

// NewService wires the pipeline stages together. checkOnly stops the
// run after the update decision, before anything is downloaded.
func NewService(
	cfg *config.Config,
	prober StateProber,
	resolver ReleaseResolver,
	fetcher *Fetcher,
	installer *Executor,
	checkOnly bool,
) *Service {
	return &Service{
		cfg:       cfg,
		prober:    prober,
		resolver:  resolver,
		fetcher:   fetcher,
		installer: installer,
		checkOnly: checkOnly,
	}
}

// Run executes the pipeline end to end and returns the first stage
// failure, if any. Reaching an up-to-date installation is a success.
func (s *Service) Run(ctx context.Context) error {
	logger.InfoKV(ctx, "Probing installed state", "application", s.cfg.AppName)

	installed, err := s.prober.Probe(ctx)
	if err != nil {
		return fmt.Errorf("probe installed state: %w", err)
	}

	logger.InfoKV(ctx, "Resolving latest release",
		"registry", s.cfg.ReleaseOwner+"/"+s.cfg.ReleaseRepo)

	latest, err := s.resolver.LatestRelease(ctx)
	if err != nil {
		return fmt.Errorf("resolve latest release: %w", err)
	}

	decision := release.Decide(installed, latest)
	if !decision.UpdateAvailable {
		logger.InfoKV(ctx, "Application is up to date",
			"installed", installed.Version, "latest", latest.Tag)

		return nil
	}

	logger.InfoKV(ctx, "Update available",
		"installed", installed.Version, "target", decision.Target)

	if s.checkOnly {
		logger.Info(ctx, "Check-only mode, skipping download and install")
		return nil
	}

	return s.applyUpdate(ctx, installed, latest)
}

// applyUpdate runs the download-and-install half of the pipeline.
func (s *Service) applyUpdate(ctx context.Context, installed release.InstalledState, latest *release.Info) error {
	asset, err := release.MatchInstaller(latest.Assets, installed.Architecture)
	if err != nil {
		return fmt.Errorf("match installer for %s: %w", installed.Architecture, err)
	}

	artifact, err := s.fetcher.Fetch(ctx, asset, installed.Architecture)
	if err != nil {
		return fmt.Errorf("download installer: %w", err)
	}

	if s.cfg.CloseRunning {
		if err = terminateRunning(ctx, s.cfg.ProcessName); err != nil {
			logger.WarnKV(ctx, "Could not terminate running application",
				"process", s.cfg.ProcessName, "error", err)
		}
	}

	if err = s.installer.Install(ctx, artifact); err != nil {
		return fmt.Errorf("install update: %w", err)
	}

	logger.InfoKV(ctx, "Update applied", "version", latest.Tag)

	return nil
}
