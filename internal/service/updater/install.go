package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/chyehsia/npp-updater/internal/logger"
)

// silentInstallFlag makes the vendor installer run without prompts.
const silentInstallFlag = "/S"

// ErrInstallStart is returned when the installer process cannot be spawned.
var ErrInstallStart = errors.New("installer could not be started")

// InstallError reports an installer process that ran and exited non-zero.
type InstallError struct {
	// ExitCode is the child process's exit status.
	ExitCode int
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	return fmt.Sprintf("installer exited with code %d", e.ExitCode)
}

// Executor runs a downloaded installer as an unattended child process.
// The exit-code contract is part of the interface: zero is success, any
// non-zero code is a failure.
type Executor struct{}

// NewExecutor creates an installer executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Install spawns the artifact with the silent flag, waits for it to
// finish and classifies the result. The artifact file is deleted
// unconditionally after the attempt; a deletion failure is logged but
// never overrides the install outcome. Stdout and stderr of the child
// are not captured.
func (e *Executor) Install(ctx context.Context, artifact *Artifact) error {
	defer func() {
		if err := os.Remove(artifact.LocalPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.WarnKV(ctx, "Could not delete installer artifact",
				"path", artifact.LocalPath, "error", err)
		}
	}()

	logger.InfoKV(ctx, "Running installer silently",
		"path", artifact.LocalPath, "arch", artifact.Architecture)

	cmd := exec.CommandContext(ctx, artifact.LocalPath, silentInstallFlag)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &InstallError{ExitCode: exitErr.ExitCode()}
		}

		return fmt.Errorf("%w: %w", ErrInstallStart, err)
	}

	logger.Info(ctx, "Installer finished successfully")

	return nil
}
