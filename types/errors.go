package types

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies the failures the tools report. Every kind is fatal
// for the current invocation.
type ErrorKind string

const (
	UsageError            ErrorKind = "USAGE"
	GeometryMismatchError ErrorKind = "GEOMETRY_MISMATCH"
	SelectionError        ErrorKind = "SELECTION"
	FormatError           ErrorKind = "FORMAT"
	ExternalToolError     ErrorKind = "EXTERNAL_TOOL"
)

// Sentinels for errors.Is, matching on Kind only
var (
	ErrUsage            = &Error{Kind: UsageError}
	ErrGeometryMismatch = &Error{Kind: GeometryMismatchError}
	ErrSelection        = &Error{Kind: SelectionError}
	ErrFormat           = &Error{Kind: FormatError}
	ErrExternalTool     = &Error{Kind: ExternalToolError}
)

type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// DetailString renders the details map in key order, for diagnostics.
func (e *Error) DetailString() string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, e.Details[k])
	}
	return strings.Join(parts, " ")
}

func NewUsage(format string, args ...any) *Error {
	return &Error{
		Kind:    UsageError,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewGeometryMismatch(fileA, fileB string, geomA, geomB fmt.Stringer) *Error {
	return &Error{
		Kind:    GeometryMismatchError,
		Message: fmt.Sprintf("the two input files do not conform: %s [%s] vs %s [%s]", fileA, geomA, fileB, geomB),
		Details: map[string]any{"fileA": fileA, "fileB": fileB, "geometryA": geomA.String(), "geometryB": geomB.String()},
	}
}

func NewSelection(format string, args ...any) *Error {
	return &Error{
		Kind:    SelectionError,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewFormat(source string, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    FormatError,
		Message: fmt.Sprintf("%s: %s", source, fmt.Sprintf(format, args...)),
		Details: map[string]any{"source": source},
		Err:     err,
	}
}

func NewExternalTool(tool string, args []string, exitCode int, stderr string, err error) *Error {
	msg := fmt.Sprintf("%s %s failed", tool, strings.Join(args, " "))
	if exitCode > 0 {
		// the exit status already says what the exec error would
		msg = fmt.Sprintf("%s with exit status %d", msg, exitCode)
		err = nil
	}
	if stderr = strings.TrimSpace(stderr); stderr != "" {
		msg = fmt.Sprintf("%s (%s)", msg, stderr)
	}
	return &Error{
		Kind:    ExternalToolError,
		Message: msg,
		Details: map[string]any{"tool": tool, "args": args, "exitCode": exitCode},
		Err:     err,
	}
}
