//go:build !windows

package install

import (
	"fmt"
	"runtime"
)

// unsupportedStore is used on hosts without a readable configuration
// store. Every read fails so the pipeline terminates at the probe stage.
type unsupportedStore struct{}

// NewStore returns the host configuration store.
func NewStore() Store {
	return unsupportedStore{}
}

// ReadString always fails on non-Windows hosts.
func (unsupportedStore) ReadString(string, string) (string, error) {
	return "", fmt.Errorf("%s: %w", runtime.GOOS, ErrUnsupportedPlatform)
}
