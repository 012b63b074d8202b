// Package config manages the ".config" file that records which engine
// implementation a data directory was opened with.
//
// The file is deliberately not JSON or anything viper could bind: it holds
// exactly one trimmed line of text, the chosen engine name, because that is
// the literal format the on-disk contract calls for. Reaching for a
// structured-config library here would fight the format rather than serve
// it — see the wiring notes in DESIGN.md.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	kvserrors "github.com/LuisBarroso37/kvs/pkg/errors"
	"github.com/LuisBarroso37/kvs/pkg/filesys"
)

const fileName = ".config"

// InvalidEngineError reports that the engine requested on the command line
// disagrees with the one a data directory was previously opened with. It
// wraps a kvserrors.EngineError (ErrorCodeInvalidEngine) so callers that
// inspect error codes, rather than this type's Recorded/Chosen fields,
// still get a consistent classification.
type InvalidEngineError struct {
	*kvserrors.EngineError

	Recorded string
	Chosen   string
}

func (e *InvalidEngineError) Error() string {
	return fmt.Sprintf("invalid chosen engine: data directory was previously opened with %q, not %q", e.Recorded, e.Chosen)
}

// Unwrap exposes the embedded EngineError to errors.As, rather than the
// promoted baseError.Unwrap (which would return the EngineError's own
// cause, skipping the EngineError node itself).
func (e *InvalidEngineError) Unwrap() error {
	return e.EngineError
}

// path returns the ".config" file's location inside dir.
func path(dir string) string {
	return filepath.Join(dir, fileName)
}

// Load returns the engine name recorded in dir's ".config" file, and false
// if no such file exists yet.
func Load(dir string) (string, bool, error) {
	exists, err := filesys.Exists(path(dir))
	if err != nil {
		return "", false, err
	}
	if !exists {
		return "", false, nil
	}

	contents, err := filesys.ReadFile(path(dir))
	if err != nil {
		return "", false, kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to read engine selection file").
			WithPath(path(dir))
	}

	return strings.TrimSpace(string(contents)), true, nil
}

// EnsureEngine records chosen as dir's engine if no selection file exists
// yet, or verifies that the existing one agrees with chosen.
func EnsureEngine(dir, chosen string) error {
	recorded, exists, err := Load(dir)
	if err != nil {
		return err
	}

	if !exists {
		if err := filesys.WriteFile(path(dir), 0644, []byte(chosen)); err != nil {
			return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to write engine selection file").
				WithPath(path(dir))
		}
		return nil
	}

	if recorded != chosen {
		msg := fmt.Sprintf("invalid chosen engine: data directory was previously opened with %q, not %q", recorded, chosen)
		return &InvalidEngineError{
			EngineError: kvserrors.NewEngineError(nil, kvserrors.ErrorCodeInvalidEngine, msg).WithEngine(chosen),
			Recorded:    recorded,
			Chosen:      chosen,
		}
	}
	return nil
}
