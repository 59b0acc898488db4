package config

import "errors"

// Configuration errors
var (
	ErrNoStages          = errors.New("pipeline must have at least one stage")
	ErrEmptyStageID      = errors.New("pipeline stage has an empty id")
	ErrDuplicateStage    = errors.New("pipeline stage id is used twice")
	ErrStageLabelTooLong = errors.New("pipeline stage label cannot exceed 50 characters")
	ErrInvalidLogLevel   = errors.New("invalid log level")
)
