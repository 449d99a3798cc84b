package evidence

import "fmt"

// IncompleteMapError indicates the model's evidence map did not cover the
// requirement list one to one. The evidence map must never be partial, so
// this aborts the stage.
type IncompleteMapError struct {
	MissingIDs    []string
	UnexpectedIDs []string
	DuplicateIDs  []string
}

func (e *IncompleteMapError) Error() string {
	return fmt.Sprintf("evidence map incomplete: missing=%v unexpected=%v duplicate=%v",
		e.MissingIDs, e.UnexpectedIDs, e.DuplicateIDs)
}
