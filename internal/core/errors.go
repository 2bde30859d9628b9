package core

import "errors"

// Error kinds shared by the world engine. Call sites wrap them with context;
// callers match with errors.Is.
var (
	// ErrInvalidArgument reports a nil or otherwise unusable parameter.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfMemory reports that a container could not grow.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrIO reports a failure reading template assets.
	ErrIO = errors.New("i/o error")
	// ErrNotFound reports a required template that is absent.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized reports use of a component before Init or after Destroy.
	ErrNotInitialized = errors.New("not initialized")
)
