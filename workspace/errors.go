package workspace

import "fmt"

// PackageError reports a failure to build the entries of one package.
type PackageError struct {
	ID      string
	Version string
	Err     error
}

func (e *PackageError) Error() string {
	return fmt.Sprintf("building %s@%s: %v", e.ID, e.Version, e.Err)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}
