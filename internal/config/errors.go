package config

import (
	"errors"

	"github.com/dshills/eztable/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidPath indicates an empty or malformed setting path.
	ErrInvalidPath = errors.New("invalid setting path")

	// ErrInvalidValue indicates a value outside the accepted set.
	ErrInvalidValue = errors.New("invalid setting value")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError
