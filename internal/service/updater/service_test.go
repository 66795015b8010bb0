package updater

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chyehsia/npp-updater/internal/config"
	"github.com/chyehsia/npp-updater/internal/domain/release"
	"github.com/chyehsia/npp-updater/internal/repository/install"
)

// fakeProber returns a canned installed state.
type fakeProber struct {
	state release.InstalledState
	err   error
	calls int
}

func (p *fakeProber) Probe(context.Context) (release.InstalledState, error) {
	p.calls++
	return p.state, p.err
}

// fakeResolver returns a canned release.
type fakeResolver struct {
	info  *release.Info
	err   error
	calls int
}

func (r *fakeResolver) LatestRelease(context.Context) (*release.Info, error) {
	r.calls++
	return r.info, r.err
}

// countingTransport fails every request and counts the attempts, so
// tests can assert that no download was ever started.
type countingTransport struct {
	calls int
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls++
	return nil, http.ErrHandlerTimeout
}

func newCountingFetcher(t *testing.T) (*Fetcher, *countingTransport) {
	t.Helper()

	transport := new(countingTransport)

	return NewFetcher(&http.Client{Transport: transport}, t.TempDir()), transport
}

// TestRunNotInstalled fails before any network call is made.
func TestRunNotInstalled(t *testing.T) {
	t.Parallel()

	prober := &fakeProber{err: install.ErrNotInstalled}
	resolver := new(fakeResolver)
	fetcher, transport := newCountingFetcher(t)

	service := NewService(config.Default(), prober, resolver, fetcher, NewExecutor(), false)

	err := service.Run(context.Background())
	require.ErrorIs(t, err, install.ErrNotInstalled)
	require.Zero(t, resolver.calls)
	require.Zero(t, transport.calls)
}

// TestRunUpToDate stops after the release query with no download attempt.
func TestRunUpToDate(t *testing.T) {
	t.Parallel()

	prober := &fakeProber{state: release.InstalledState{
		Version:      release.Version{8, 6, 0},
		Architecture: release.ArchX64,
	}}
	resolver := &fakeResolver{info: &release.Info{
		Tag:    release.Version{8, 6, 0},
		Assets: []release.Asset{{Name: "npp.8.6.0.Installer.x64.exe", DownloadURL: "u"}},
	}}
	fetcher, transport := newCountingFetcher(t)

	service := NewService(config.Default(), prober, resolver, fetcher, NewExecutor(), false)

	require.NoError(t, service.Run(context.Background()))
	require.Equal(t, 1, resolver.calls)
	require.Zero(t, transport.calls)
}

// TestRunNewerLocalVersion treats a local version ahead of the registry as up to date.
func TestRunNewerLocalVersion(t *testing.T) {
	t.Parallel()

	prober := &fakeProber{state: release.InstalledState{
		Version:      release.Version{9, 0},
		Architecture: release.ArchX64,
	}}
	resolver := &fakeResolver{info: &release.Info{
		Tag:    release.Version{8, 6, 0},
		Assets: []release.Asset{{Name: "npp.8.6.0.Installer.x64.exe", DownloadURL: "u"}},
	}}
	fetcher, transport := newCountingFetcher(t)

	service := NewService(config.Default(), prober, resolver, fetcher, NewExecutor(), false)

	require.NoError(t, service.Run(context.Background()))
	require.Zero(t, transport.calls)
}

// TestRunNoMatchingAsset fails without attempting a download.
func TestRunNoMatchingAsset(t *testing.T) {
	t.Parallel()

	prober := &fakeProber{state: release.InstalledState{
		Version:      release.Version{8, 5, 1},
		Architecture: release.ArchX64,
	}}
	resolver := &fakeResolver{info: &release.Info{
		Tag:    release.Version{8, 6, 0},
		Assets: []release.Asset{{Name: "npp.8.6.0.portable.zip", DownloadURL: "u"}},
	}}
	fetcher, transport := newCountingFetcher(t)

	service := NewService(config.Default(), prober, resolver, fetcher, NewExecutor(), false)

	err := service.Run(context.Background())
	require.ErrorIs(t, err, release.ErrNoMatchingAsset)
	require.Zero(t, transport.calls)
}

// TestRunCheckOnly reports an available update without downloading it.
func TestRunCheckOnly(t *testing.T) {
	t.Parallel()

	prober := &fakeProber{state: release.InstalledState{
		Version:      release.Version{8, 5, 1},
		Architecture: release.ArchX64,
	}}
	resolver := &fakeResolver{info: &release.Info{
		Tag:    release.Version{8, 6, 0},
		Assets: []release.Asset{{Name: "npp.8.6.0.Installer.x64.exe", DownloadURL: "u"}},
	}}
	fetcher, transport := newCountingFetcher(t)

	service := NewService(config.Default(), prober, resolver, fetcher, NewExecutor(), true)

	require.NoError(t, service.Run(context.Background()))
	require.Zero(t, transport.calls)
}

// TestRunResolverFailure propagates the resolver's typed error.
func TestRunResolverFailure(t *testing.T) {
	t.Parallel()

	prober := &fakeProber{state: release.InstalledState{
		Version:      release.Version{8, 5, 1},
		Architecture: release.ArchX64,
	}}
	resolver := &fakeResolver{err: http.ErrHandlerTimeout}
	fetcher, transport := newCountingFetcher(t)

	service := NewService(config.Default(), prober, resolver, fetcher, NewExecutor(), false)

	err := service.Run(context.Background())
	require.ErrorIs(t, err, http.ErrHandlerTimeout)
	require.Zero(t, transport.calls)
}
