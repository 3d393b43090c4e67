package deps

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is matched by every *CycleError.
var ErrCycle = errors.New("dependency pruning cycle")

// CycleError is returned when pruning would expand a package already being
// expanded on the current path.
type CycleError struct {
	// Path starts with the pruned owner and ends with the re-entered id.
	// Format: ["A", "B", "A"]
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(e.Path, " -> "))
}

// Is reports whether target is ErrCycle.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}
