package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/chyehsia/npp-updater/internal/domain/release"
	"github.com/chyehsia/npp-updater/internal/logger"
	"github.com/chyehsia/npp-updater/internal/version"
)

var (
	// ErrDownloadFailed is returned on transport failures and
	// non-success response statuses while fetching an asset.
	ErrDownloadFailed = errors.New("artifact download failed")

	// ErrWriteFailed is returned when the artifact cannot be written
	// to local storage.
	ErrWriteFailed = errors.New("artifact write failed")
)

// artifactFileMode lets the child process be spawned directly.
const artifactFileMode os.FileMode = 0o755

// Artifact is a downloaded installer on local storage. It is owned by
// the fetcher until handed to the executor, which deletes it after the
// install attempt regardless of outcome.
type Artifact struct {
	// LocalPath is where the installer was written.
	LocalPath string
	// Architecture is the architecture the installer targets.
	Architecture release.Arch
}

// Fetcher downloads release assets into a scratch directory.
type Fetcher struct {
	httpClient *http.Client
	dir        string
}

// NewFetcher creates a fetcher writing into dir. An empty dir means the
// system temporary directory. The HTTP client is passed in explicitly
// so the caller controls its timeout.
func NewFetcher(httpClient *http.Client, dir string) *Fetcher {
	if dir == "" {
		dir = os.TempDir()
	}

	return &Fetcher{
		httpClient: httpClient,
		dir:        dir,
	}
}

// Fetch downloads the asset fully before returning. The local filename
// is derived from the asset name so an operator inspecting the scratch
// directory mid-failure can identify it. A partially written file is
// removed on any failure, including cancellation.
func (f *Fetcher) Fetch(ctx context.Context, asset release.Asset, arch release.Arch) (*Artifact, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	request.Header.Set("User-Agent", version.UserAgent())

	logger.InfoKV(ctx, "Downloading installer", "asset", asset.Name, "url", asset.DownloadURL)

	response, err := f.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", ErrDownloadFailed, asset.DownloadURL, response.Status)
	}

	outputPath := filepath.Join(f.dir, asset.Name)

	outputFile, err := os.OpenFile(filepath.Clean(outputPath), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, artifactFileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	if _, err = io.Copy(outputFile, response.Body); err != nil {
		_ = outputFile.Close()
		_ = os.Remove(outputPath)

		// A failed write surfaces as a path error; anything else came
		// from the transport side of the copy.
		if isWriteSide(err) {
			return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	if err = outputFile.Close(); err != nil {
		_ = os.Remove(outputPath)
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	logger.InfoKV(ctx, "Installer downloaded", "path", outputPath)

	return &Artifact{
		LocalPath:    outputPath,
		Architecture: arch,
	}, nil
}

// isWriteSide reports whether a copy error originated in local storage.
func isWriteSide(err error) bool {
	var pathErr *os.PathError
	return errors.As(err, &pathErr)
}
