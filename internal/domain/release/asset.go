package release

import (
	"errors"
	"strings"
)

// ErrNoMatchingAsset is returned when a release carries no installer
// for the requested architecture. It is a reportable outcome, not a
// programming error.
var ErrNoMatchingAsset = errors.New("no matching installer asset")

// Arch identifies the processor architecture of the installed
// application. Exactly one value applies per installed system.
type Arch string

// Supported architectures.
const (
	ArchX86 Arch = "x86"
	ArchX64 Arch = "x64"
)

// Installer name suffixes per architecture. The suffixes are
// dot-anchored so they are mutually exclusive: an x64 installer name
// never ends with the x86 suffix, and "x64" cannot be found inside an
// unrelated token. Checksums, signatures, portable archives and symbol
// bundles match neither.
const (
	installerSuffixX86 = ".Installer.exe"
	installerSuffixX64 = ".Installer.x64.exe"
)

// InstallerSuffix returns the asset-name suffix that identifies an
// installer for this architecture.
func (a Arch) InstallerSuffix() string {
	if a == ArchX64 {
		return installerSuffixX64
	}

	return installerSuffixX86
}

// Asset is a single downloadable file attached to a release.
type Asset struct {
	// Name is the filename of the asset as published.
	Name string
	// DownloadURL is where the asset content can be fetched.
	DownloadURL string
}

// Info describes the most recent published release.
type Info struct {
	// Tag is the release version with any tag prefix stripped.
	Tag Version
	// Assets are the downloadable files in their published order.
	Assets []Asset
}

// MatchInstaller selects the first asset whose name identifies a
// silent installer for the given architecture. Matching is
// deterministic: the same asset list and architecture always yield the
// same asset.
func MatchInstaller(assets []Asset, arch Arch) (Asset, error) {
	suffix := arch.InstallerSuffix()

	for _, asset := range assets {
		if strings.HasSuffix(asset.Name, suffix) {
			return asset, nil
		}
	}

	return Asset{}, ErrNoMatchingAsset
}

// InstalledState describes the locally installed application as read
// from the host configuration store. It is read-only once constructed.
type InstalledState struct {
	// Version is the installed application version.
	Version Version
	// Architecture is inferred from which registry subtree held the
	// application's registration.
	Architecture Arch
	// InstallDir is the application's install location, when recorded.
	InstallDir string
}

// Decision is the outcome of comparing the installed version against
// the latest published release. It is computed fresh each run and
// never persisted.
type Decision struct {
	// UpdateAvailable is true when the installed version is strictly
	// older than the latest release.
	UpdateAvailable bool
	// Target is the version an update would install. Set only when
	// UpdateAvailable is true.
	Target Version
}

// Decide derives the update decision from the installed state and the
// latest release. An update is available iff the installed version
// compares strictly less than the release tag.
func Decide(installed InstalledState, latest *Info) Decision {
	if Compare(installed.Version, latest.Tag) == Less {
		return Decision{UpdateAvailable: true, Target: latest.Tag}
	}

	return Decision{}
}
