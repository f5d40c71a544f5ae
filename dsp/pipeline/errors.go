package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPreset is returned when a preset name is not in the catalog.
	ErrUnknownPreset = errors.New("pipeline: unknown preset")
	// ErrExternalStage marks a recovered failure of a pitch-shift or
	// time-stretch collaborator. Run never returns it; recovered failures
	// are reported in Result.Recovered.
	ErrExternalStage = errors.New("pipeline: external stage failed")
	// ErrInvalidOverride is returned for an override value of the wrong type.
	ErrInvalidOverride = errors.New("pipeline: invalid override")
	// ErrInvalidRequest is returned for an unusable speed or normalize target.
	ErrInvalidRequest = errors.New("pipeline: invalid request")

	errDuplicatePreset = errors.New("duplicate preset")
)

// StageError reports which stage of a run failed.
type StageError struct {
	Index int // position in the resolved stage list
	Kind  StageKind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
