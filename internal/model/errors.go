package model

import "errors"

// Artifact loading and inference error sentinels.
var (
	ErrInvalidArtifact     = errors.New("invalid model artifact")
	ErrMissingLabelEncoder = errors.New("label encoder not found")
	ErrUnknownLabel        = errors.New("label encoder contains an unknown category")
	ErrDimensionMismatch   = errors.New("feature dimension mismatch")
	ErrNoArtifact          = errors.New("no model artifact could be loaded")
)
