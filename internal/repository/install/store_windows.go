//go:build windows

package install

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// registryStore reads string values from HKEY_LOCAL_MACHINE.
type registryStore struct{}

// NewStore returns the host registry store.
func NewStore() Store {
	return registryStore{}
}

// ReadString opens the key read-only and returns the named string value.
func (registryStore) ReadString(keyPath, valueName string) (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", keyPath, ErrKeyNotFound)
		}

		return "", fmt.Errorf("open key %s: %w", keyPath, err)
	}

	defer func() {
		_ = key.Close()
	}()

	value, _, err := key.GetStringValue(valueName)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fmt.Errorf("%s\\%s: %w", keyPath, valueName, ErrKeyNotFound)
		}

		return "", fmt.Errorf("read value %s\\%s: %w", keyPath, valueName, err)
	}

	return value, nil
}
