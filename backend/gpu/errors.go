//go:build !nogpu

package gpu

import "errors"

// Package errors for the GPU tile backend.
var (
	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("gpu: backend not initialized")

	// ErrNoDevice is returned when the backend is constructed without a
	// device and queue.
	ErrNoDevice = errors.New("gpu: device and queue are required")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("gpu: invalid dimensions")

	// ErrNilSnapshot is returned when a nil snapshot is submitted.
	ErrNilSnapshot = errors.New("gpu: nil snapshot")
)
