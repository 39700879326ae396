package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownTheme indicates a theme name that is neither built in nor a
	// readable theme file.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrInvalidColor indicates a theme colour that is not a hex triple or
	// "default".
	ErrInvalidColor = errors.New("invalid color")

	// ErrUnsupportedFormat indicates a theme file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported theme format")

	// ErrInvalidValue indicates a setting with a value outside its domain.
	ErrInvalidValue = errors.New("invalid value")
)

// ParseError represents an error while parsing a configuration or theme
// file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a setting that failed validation.
type ValidationError struct {
	// Key is the setting name as written in the config file.
	Key string
	// Value is the rejected value.
	Value any
	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Key, e.Message, e.Value)
}

// Is reports ErrInvalidValue as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidValue
}
