package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShortcut indicates that a shortcut specification could not be parsed.
	ErrInvalidShortcut = errors.New("invalid shortcut")

	// ErrShortcutInUse indicates that the shortcut is already bound.
	ErrShortcutInUse = errors.New("shortcut already registered")

	// ErrShortcutNotRegistered indicates an unregister for an unknown shortcut.
	ErrShortcutNotRegistered = errors.New("shortcut not registered")

	// ErrUnsupportedPlatform indicates the OS integration is unavailable here.
	ErrUnsupportedPlatform = errors.New("not supported on this platform")
)

// PathResolutionError reports that a configuration or data directory could
// not be determined or canonicalized.
type PathResolutionError struct {
	Op  string
	Err error
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Op, e.Err)
}

func (e *PathResolutionError) Unwrap() error {
	return e.Err
}

// IOError wraps a filesystem failure (create dir, read, write).
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a settings decode failure. Line and Column are
// 1-indexed and zero when the decoder did not report a position.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse config %s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SerializationError reports that settings could not be encoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("encode config: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
