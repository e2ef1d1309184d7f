package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel causes. Wrap them in a ConfigurationError or ContractViolation so
// callers can match with errors.Is.
var (
	ErrEmptyPattern         = stderrors.New("pattern is empty")
	ErrConsecutiveWildcards = stderrors.New("pattern contains consecutive wildcard segments")
	ErrWildcardNotTrailing  = stderrors.New("wildcard segment must be the last segment")
	ErrDuplicateParam       = stderrors.New("parameter name used more than once")
	ErrUnnamedParam         = stderrors.New("parameter segment has no name")
	ErrMissingObserver      = stderrors.New("router observer is required")
	ErrMissingGenerator     = stderrors.New("route has no generator")
	ErrUnknownGenerator     = stderrors.New("generator is not registered")
	ErrNoDiscriminators     = stderrors.New("no schemes or hosts given")
	ErrMissingOrigin        = stderrors.New("observer allowed presentation but returned no origin")
	ErrMissingPresentation  = stderrors.New("action has no presentation and no default is configured")
)

// detail holds the fields shared by every coded error
type detail struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Err     error
}

func (d *detail) format(kind string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%d]: %s", kind, d.Code.Int(), d.Message)
	if len(d.Details) > 0 {
		keys := make([]string, 0, len(d.Details))
		for k := range d.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, d.Details[k])
		}
		b.WriteString(")")
	}
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}
	return b.String()
}

func (d *detail) set(key string, value any) {
	if d.Details == nil {
		d.Details = make(map[string]any)
	}
	d.Details[key] = value
}

// ConfigurationError reports a misconfiguration detected while building or
// registering routes. It is never produced by a dispatch.
type ConfigurationError struct {
	detail
}

// NewConfigurationError creates a configuration error wrapping cause.
// An empty message falls back to the code's default message.
func NewConfigurationError(code ErrorCode, message string, cause error) *ConfigurationError {
	if message == "" {
		message = code.Message()
	}
	return &ConfigurationError{detail{Code: code, Message: message, Err: cause}}
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return e.format("configuration error")
}

// Unwrap returns the wrapped cause
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// WithDetail adds a single detail to the error
func (e *ConfigurationError) WithDetail(key string, value any) *ConfigurationError {
	e.set(key, value)
	return e
}

// ContractViolation signals a collaborator that broke its contract with the
// dispatch engine. The engine panics with it; it is a programming error.
type ContractViolation struct {
	detail
}

// NewContractViolation creates a contract violation wrapping cause
func NewContractViolation(message string, cause error) *ContractViolation {
	if message == "" {
		message = CodeContractViolation.Message()
	}
	return &ContractViolation{detail{Code: CodeContractViolation, Message: message, Err: cause}}
}

// Error implements the error interface
func (e *ContractViolation) Error() string {
	return e.format("contract violation")
}

// Unwrap returns the wrapped cause
func (e *ContractViolation) Unwrap() error {
	return e.Err
}

// WithDetail adds a single detail to the error
func (e *ContractViolation) WithDetail(key string, value any) *ContractViolation {
	e.set(key, value)
	return e
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return stderrors.As(err, &ce)
}

// IsContractViolation reports whether err is or wraps a ContractViolation
func IsContractViolation(err error) bool {
	var cv *ContractViolation
	return stderrors.As(err, &cv)
}

// CodeOf returns the code carried by err, or CodeInternalError when err
// carries none.
func CodeOf(err error) ErrorCode {
	var ce *ConfigurationError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	var cv *ContractViolation
	if stderrors.As(err, &cv) {
		return cv.Code
	}
	return CodeInternalError
}
