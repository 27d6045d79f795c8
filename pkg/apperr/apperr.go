// Package apperr defines the sentinel errors the lifecycle operations
// return to callers. All four are expected, user-facing outcomes; anything
// else bubbling out of a service is an internal failure.
package apperr

import "errors"

var (
	// ErrValidation marks malformed input the caller can correct and retry.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown record id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition marks a state-machine guard failure, including
	// "already resolved" outcomes of races between callers and the sweeper.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidOTP marks an absent or mismatched completion code.
	ErrInvalidOTP = errors.New("invalid completion code")
)
