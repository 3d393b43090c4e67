package nuget2bazel

import "errors"

// ErrNoTargets indicates a conversion configured without any target.
var ErrNoTargets = errors.New("at least one target is required")
