package game

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine.
var (
	ErrLockedLevel     = errors.New("level is locked")
	ErrInvalidHolder   = errors.New("invalid record holder name")
	ErrLevelLoad       = errors.New("level failed to load")
	ErrNoSession       = errors.New("no level in progress")
	ErrNoPendingRecord = errors.New("no record awaiting a holder")
	ErrUnknownLevel    = errors.New("unknown level")
)

// LevelLoadError describes a malformed level descriptor.
type LevelLoadError struct {
	LevelID int
	Field   string // Offending field, e.g. "objects[2].hidden"; empty when the whole file failed
	Reason  string
	Err     error // Underlying decode or read error, if any
}

func (e *LevelLoadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("level %d: %s", e.LevelID, e.Reason)
	}
	return fmt.Sprintf("level %d: %s: %s", e.LevelID, e.Field, e.Reason)
}

// Is matches ErrLevelLoad.
func (e *LevelLoadError) Is(target error) bool {
	return target == ErrLevelLoad
}

func (e *LevelLoadError) Unwrap() error {
	return e.Err
}

// AsLevelLoadError wraps err for levelID unless it already is a LevelLoadError.
func AsLevelLoadError(levelID int, err error) *LevelLoadError {
	var lle *LevelLoadError
	if errors.As(err, &lle) {
		return lle
	}
	return &LevelLoadError{LevelID: levelID, Reason: err.Error(), Err: err}
}
