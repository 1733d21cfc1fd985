// Package core provides the error taxonomy shared by the flowdigest pipeline.
package core

// ErrorCategory classifies an error by how the pipeline reacts to it.
type ErrorCategory int

const (
	ErrCategoryNone         ErrorCategory = iota // No error
	ErrCategoryInput                             // Missing or malformed flow file
	ErrCategoryConfig                            // Missing credentials, invalid config file
	ErrCategoryCollaborator                      // Text or image generation service failed
	ErrCategoryOutput                            // Artifact could not be written
)

// String returns the string representation of ErrorCategory
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryInput:
		return "input"
	case ErrCategoryConfig:
		return "config"
	case ErrCategoryCollaborator:
		return "collaborator"
	case ErrCategoryOutput:
		return "output"
	default:
		return "unknown"
	}
}
