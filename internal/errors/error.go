package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryRouting    Category = "routing"
	CategoryConfig     Category = "config"
	CategoryServer     Category = "server"
	CategoryDeploy     Category = "deploy"
	CategoryCLI        Category = "cli"
	CategoryValidation Category = "validation"
)

// Location represents a position in a configuration file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// WayfindError is a structured error with a stable code, fix
// suggestions, and documentation links.
type WayfindError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (routing, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the config file position where the error occurred.
	Location *Location

	// Context contains surrounding config file lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *WayfindError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WayfindError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a config file location to the error and captures
// the surrounding lines for display.
func (e *WayfindError) WithLocation(file string, line, column int) *WayfindError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WayfindError) WithSuggestion(s string) *WayfindError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *WayfindError) WithDetail(d string) *WayfindError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *WayfindError) Wrap(err error) *WayfindError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a WayfindError from a registered error code.
func New(code string) *WayfindError {
	template, ok := registry[code]
	if !ok {
		return &WayfindError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &WayfindError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new WayfindError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *WayfindError {
	return &WayfindError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a WayfindError.
func FromError(err error, code string) *WayfindError {
	if err == nil {
		return nil
	}
	if we, ok := err.(*WayfindError); ok {
		return we
	}
	return New(code).Wrap(err)
}
