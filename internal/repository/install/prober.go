package install

import (
	"context"
	"errors"
	"fmt"

	"github.com/chyehsia/npp-updater/internal/domain/release"
	"github.com/chyehsia/npp-updater/internal/logger"
)

const (
	// nativeUninstallPrefix is where a 64-bit application registers on
	// a 64-bit host (or a 32-bit application on a 32-bit host).
	nativeUninstallPrefix = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\`

	// compatUninstallPrefix is the architecture-compatibility subtree
	// where a 32-bit application registers on a 64-bit host.
	compatUninstallPrefix = `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall\`

	// Value names under the application's uninstall key.
	versionValueName    = "DisplayVersion"
	installDirValueName = "InstallLocation"
)

var (
	// ErrNotInstalled is returned when the application's registration
	// key is absent under both the native and the compatibility subtree.
	ErrNotInstalled = errors.New("application is not installed")

	// ErrMalformedState is returned when the registration is present but
	// its version value cannot be parsed.
	ErrMalformedState = errors.New("installed version is malformed")
)

// Prober locates the installed application in the host configuration
// store. It reads only; no key is ever written.
type Prober struct {
	store   Store
	appName string
}

// NewProber creates a prober for the named application over the given store.
func NewProber(store Store, appName string) *Prober {
	return &Prober{
		store:   store,
		appName: appName,
	}
}

// Probe returns the installed state of the application. The native
// subtree is tried first; a hit there means a 64-bit installation. The
// compatibility subtree is tried second; a hit there means a 32-bit
// installation on a 64-bit host. Only when both miss is the application
// considered not installed.
func (p *Prober) Probe(ctx context.Context) (release.InstalledState, error) {
	locations := []struct {
		keyPath string
		arch    release.Arch
	}{
		{nativeUninstallPrefix + p.appName, release.ArchX64},
		{compatUninstallPrefix + p.appName, release.ArchX86},
	}

	for _, location := range locations {
		rawVersion, err := p.store.ReadString(location.keyPath, versionValueName)
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				logger.DebugKV(ctx, "Registration key missed", "key", location.keyPath)
				continue
			}

			return release.InstalledState{}, fmt.Errorf("probe installed state: %w", err)
		}

		installedVersion, err := release.ParseVersion(rawVersion)
		if err != nil {
			return release.InstalledState{}, fmt.Errorf("%w: %q: %w", ErrMalformedState, rawVersion, err)
		}

		// The install location is informational; its absence is fine.
		installDir, err := p.store.ReadString(location.keyPath, installDirValueName)
		if err != nil && !errors.Is(err, ErrKeyNotFound) {
			return release.InstalledState{}, fmt.Errorf("probe install location: %w", err)
		}

		logger.InfoKV(ctx, "Found installed application",
			"version", installedVersion, "arch", location.arch)

		return release.InstalledState{
			Version:      installedVersion,
			Architecture: location.arch,
			InstallDir:   installDir,
		}, nil
	}

	return release.InstalledState{}, fmt.Errorf("%s: %w", p.appName, ErrNotInstalled)
}
