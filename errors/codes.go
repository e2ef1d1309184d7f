// Package errors provides the coded error taxonomy used across linkroute
package errors

// ErrorCode represents a standardized error code
type ErrorCode int

// Error code categories:
// 1xxx - Validation errors (route maps, patterns)
// 3xxx - System errors (configuration, files)
// 4xxx - Routing errors
const (
	// Validation errors (1xxx)
	CodeValidationFailed     ErrorCode = 1000
	CodeInvalidInput         ErrorCode = 1001
	CodeMissingRequiredField ErrorCode = 1002
	CodeInvalidFormat        ErrorCode = 1003
	CodeDuplicateValue       ErrorCode = 1005
	CodeInvalidPattern       ErrorCode = 1010

	// System errors (3xxx)
	CodeInternalError      ErrorCode = 3000
	CodeConfigurationError ErrorCode = 3009
	CodeUnmarshalError     ErrorCode = 3013
	CodeFileSystemError    ErrorCode = 3014

	// Routing errors (4xxx)
	CodeRoutingError      ErrorCode = 4000
	CodeRouteNotFound     ErrorCode = 4001
	CodeInvalidState      ErrorCode = 4008
	CodeContractViolation ErrorCode = 4010
	CodeGenerationFailed  ErrorCode = 4011
	CodeUnknownGenerator  ErrorCode = 4012
)

// errorMessages maps error codes to default messages
var errorMessages = map[ErrorCode]string{
	CodeValidationFailed:     "Validation failed",
	CodeInvalidInput:         "Invalid input provided",
	CodeMissingRequiredField: "Required field is missing",
	CodeInvalidFormat:        "Invalid format",
	CodeDuplicateValue:       "Duplicate value not allowed",
	CodeInvalidPattern:       "Invalid route pattern",

	CodeInternalError:      "Internal error",
	CodeConfigurationError: "Configuration error",
	CodeUnmarshalError:     "Data unmarshaling error",
	CodeFileSystemError:    "File system error",

	CodeRoutingError:      "Routing error",
	CodeRouteNotFound:     "No route matched",
	CodeInvalidState:      "Invalid state",
	CodeContractViolation: "Collaborator contract violated",
	CodeGenerationFailed:  "Generator produced no action",
	CodeUnknownGenerator:  "Unknown generator",
}

// Message returns the default message for an error code
func (e ErrorCode) Message() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}
	return "Unknown error"
}

// Int returns the error code as an integer
func (e ErrorCode) Int() int {
	return int(e)
}

// String returns the error code as a string
func (e ErrorCode) String() string {
	return e.Message()
}

// Category returns the category name of the code range
func (e ErrorCode) Category() string {
	switch {
	case e >= 1000 && e < 2000:
		return "validation"
	case e >= 3000 && e < 4000:
		return "system"
	case e >= 4000 && e < 5000:
		return "routing"
	default:
		return "unknown"
	}
}
