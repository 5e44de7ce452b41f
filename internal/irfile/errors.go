package irfile

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes for fixture loading.
const (
	ErrCodeNotFound    = "E005" // File not found or unreadable
	ErrCodeUnsupported = "E008" // Unsupported file extension
	ErrCodeDecode      = "E009" // YAML/CUE decode or schema failure
	ErrCodeUnknownRef  = "E201" // Reference to an undeclared name
	ErrCodeBadNode     = "E202" // Malformed value or operation
	ErrCodeUnknownType = "E203" // Unknown value type, op tag or kind
)

// LoadError is an error loading or building a fixture.
type LoadError struct {
	Code    string
	Message string
	// Path locates the offending element, e.g. "ops[1].body[0].in[2]".
	Path string
	// Pos is the CUE source position, when known.
	Pos token.Pos
}

func (e *LoadError) Error() string {
	prefix := e.Code
	if e.Pos.IsValid() {
		prefix = fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func badNode(path, format string, args ...any) *LoadError {
	return &LoadError{Code: ErrCodeBadNode, Path: path, Message: fmt.Sprintf(format, args...)}
}
