package flow

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	json "github.com/json-iterator/go"
)

// NotFoundError is returned when the flow file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: flow file not found", e.Path)
}

// Unwrap exposes both the input-error sentinel and the filesystem cause.
func (e *NotFoundError) Unwrap() []error {
	return []error{core.ErrFlowNotFound, e.Err}
}

// ParseError represents a parsing error with location info.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap exposes both the input-error sentinel and the decoder cause.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{core.ErrFlowParse}
	}
	return []error{core.ErrFlowParse, e.Err}
}

// ParseFile reads and parses a single flow.json file.
func ParseFile(path string) (*Flow, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is user-provided flow file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data, path)
}

// Parse parses flow JSON content. Contents are not transformed; missing
// arrays stay nil.
func Parse(data []byte, sourcePath string) (*Flow, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{
			Path:    sourcePath,
			Message: "empty flow file",
		}
	}

	var f Flow
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{
			Path:    sourcePath,
			Message: fmt.Sprintf("invalid flow: %v", err),
			Err:     err,
		}
	}
	f.SourcePath = sourcePath
	return &f, nil
}
