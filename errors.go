package lshstore

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrKeyNotFound is returned by GetValue when no value has been set
	// under the key. All backends return it; absence is never a panic
	// or a silent sentinel value.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNotSupported is returned when a single-value operation is
	// invoked on a backend that only provides list semantics. It marks
	// a usage error, not a transient condition.
	ErrNotSupported = errors.New("operation not supported by this backend")
)

// ConfigError indicates that the storage configuration does not select
// exactly one backend.
type ConfigError struct {
	// Selected holds the backend sections present in the config.
	Selected []string
}

func (e *ConfigError) Error() string {
	if len(e.Selected) == 0 {
		return "storage config selects no backend (want exactly one of memory, redis, bolt)"
	}
	return fmt.Sprintf("storage config selects %d backends (%s), want exactly one",
		len(e.Selected), strings.Join(e.Selected, ", "))
}

// MissingDriverError indicates that the configured backend has no
// registered driver in this binary.
//
// Persistent drivers register themselves from their own packages, so
// the fix is a blank import of ImportPath.
type MissingDriverError struct {
	Kind       string
	ImportPath string
}

func (e *MissingDriverError) Error() string {
	return fmt.Sprintf("no driver registered for %q backend (import %s)", e.Kind, e.ImportPath)
}
