package install

import "errors"

// Store abstracts the host configuration store the application
// registers itself in. On Windows this is the registry under
// HKEY_LOCAL_MACHINE; tests substitute an in-memory map.
type Store interface {
	// ReadString returns the named string value under the given key
	// path. It reports ErrKeyNotFound when the key or value is absent.
	ReadString(keyPath, valueName string) (string, error)
}

var (
	// ErrKeyNotFound is reported by a Store when a key or value is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnsupportedPlatform is reported on hosts without a
	// configuration store the prober can read.
	ErrUnsupportedPlatform = errors.New("configuration store not available on this platform")
)
