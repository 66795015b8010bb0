package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chyehsia/npp-updater/internal/domain/release"
)

// TestFetchWritesArtifact downloads an asset into the scratch directory.
func TestFetchWritesArtifact(t *testing.T) {
	t.Parallel()

	body := []byte("installer-bytes")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	defer ts.Close()

	dir := t.TempDir()
	fetcher := NewFetcher(ts.Client(), dir)

	asset := release.Asset{Name: "npp.8.6.0.Installer.x64.exe", DownloadURL: ts.URL + "/installer"}

	artifact, err := fetcher.Fetch(context.Background(), asset, release.ArchX64)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, asset.Name), artifact.LocalPath)
	require.Equal(t, release.ArchX64, artifact.Architecture)

	contents, err := os.ReadFile(artifact.LocalPath)
	require.NoError(t, err)
	require.Equal(t, body, contents)

	info, err := os.Stat(artifact.LocalPath)
	require.NoError(t, err)
	require.Equal(t, artifactFileMode, info.Mode().Perm())
}

// TestFetchBadStatus leaves no file behind on a non-success response.
func TestFetchBadStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	dir := t.TempDir()
	fetcher := NewFetcher(ts.Client(), dir)

	asset := release.Asset{Name: "missing.Installer.exe", DownloadURL: ts.URL + "/missing"}

	_, err := fetcher.Fetch(context.Background(), asset, release.ArchX86)
	require.ErrorIs(t, err, ErrDownloadFailed)

	_, err = os.Stat(filepath.Join(dir, asset.Name))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestFetchUnwritableDir reports a storage failure distinctly from transport errors.
func TestFetchUnwritableDir(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer ts.Close()

	// A regular file in place of the scratch directory.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("f"), 0o600))

	fetcher := NewFetcher(ts.Client(), blocker)

	_, err := fetcher.Fetch(context.Background(), release.Asset{
		Name:        "a.Installer.exe",
		DownloadURL: ts.URL,
	}, release.ArchX86)
	require.ErrorIs(t, err, ErrWriteFailed)
}

// TestFetchCancelledContext aborts before any file is created.
func TestFetchCancelledContext(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	fetcher := NewFetcher(ts.Client(), dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, release.Asset{
		Name:        "a.Installer.exe",
		DownloadURL: ts.URL,
	}, release.ArchX86)
	require.ErrorIs(t, err, ErrDownloadFailed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
