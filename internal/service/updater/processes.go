package updater

import (
	"context"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/chyehsia/npp-updater/internal/logger"
)

// terminateRunning kills processes whose executable name equals
// processName so the installer does not race a running instance of the
// application. The comparison ignores case to match Windows semantics.
func terminateRunning(ctx context.Context, processName string) error {
	processList, err := ps.Processes()
	if err != nil {
		return err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		processID := process.Pid()
		if processID == thisProcessID {
			continue
		}

		if !strings.EqualFold(process.Executable(), processName) {
			continue
		}

		runningProcess, err := os.FindProcess(processID)
		if err != nil {
			return err
		}

		if err = runningProcess.Kill(); err != nil {
			return err
		}

		logger.InfoKV(ctx, "Terminated running application process",
			"process", processName, "pid", processID)
	}

	return nil
}
