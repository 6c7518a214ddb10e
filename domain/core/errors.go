package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Inference errors
	ErrUnknownCategory = errors.New("unknown category")
	ErrMalformedInput  = errors.New("malformed input")

	// Artifact errors
	ErrMissingArtifact  = errors.New("missing artifact")
	ErrArtifactMismatch = fmt.Errorf("%w: fingerprint mismatch", ErrMissingArtifact)

	// Training errors
	ErrInsufficientData = errors.New("insufficient data for training")
	ErrNotFitted        = errors.New("model not fitted")
)

// IsUnknownCategory reports whether err stems from an unseen categorical value
func IsUnknownCategory(err error) bool {
	return errors.Is(err, ErrUnknownCategory)
}

// IsMissingArtifact reports whether err means the persisted artifacts cannot be used
func IsMissingArtifact(err error) bool {
	return errors.Is(err, ErrMissingArtifact)
}

// IsMalformedInput reports whether err stems from unparseable caller input
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}
