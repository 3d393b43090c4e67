package nuget

import (
	"errors"
	"fmt"
)

// Sentinel errors for structurally invalid descriptors.
var (
	// ErrNilPackage indicates a nil descriptor.
	ErrNilPackage = errors.New("nil package descriptor")

	// ErrMissingID indicates a descriptor without an id.
	ErrMissingID = errors.New("missing package id")

	// ErrMissingFiles indicates the file listing is absent.
	ErrMissingFiles = errors.New("missing file list")

	// ErrInvalidPath indicates a file path outside the package root.
	ErrInvalidPath = errors.New("invalid file path")

	// ErrInvalidDependency indicates a malformed dependency declaration.
	ErrInvalidDependency = errors.New("invalid dependency")
)

// InputError is a fatal error for one package descriptor.
type InputError struct {
	ID      string
	Version string
	Err     error
}

func (e *InputError) Error() string {
	if e.ID == "" {
		return "invalid package: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid package %s@%s: %v", e.ID, e.Version, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// PathError describes a rejected file path.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Path)
}

func (e *PathError) Unwrap() error {
	return ErrInvalidPath
}

// DependencyError describes a malformed dependency group entry.
type DependencyError struct {
	Framework string
	Err       error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency group %s: %v", e.Framework, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
