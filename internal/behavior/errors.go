package behavior

import "errors"

var (
	ErrDatasetShape     = errors.New("behavior dataset must be an object or an array of objects")
	ErrInputShape       = errors.New("behavior tree must be an array")
	ErrBehaviorNotFound = errors.New("behavior not found")
	ErrStageNotFound    = errors.New("stage not found")
)
