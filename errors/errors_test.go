package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_Message(t *testing.T) {
	tests := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{"ValidationFailed", CodeValidationFailed, "Validation failed"},
		{"InvalidPattern", CodeInvalidPattern, "Invalid route pattern"},
		{"ConfigurationError", CodeConfigurationError, "Configuration error"},
		{"ContractViolation", CodeContractViolation, "Collaborator contract violated"},
		{"Unknown", ErrorCode(9999), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.Message())
			assert.Equal(t, tt.expected, tt.code.String())
		})
	}
}

func TestErrorCode_Category(t *testing.T) {
	assert.Equal(t, "validation", CodeDuplicateValue.Category())
	assert.Equal(t, "system", CodeConfigurationError.Category())
	assert.Equal(t, "routing", CodeRouteNotFound.Category())
	assert.Equal(t, "unknown", ErrorCode(42).Category())
	assert.Equal(t, 3009, CodeConfigurationError.Int())
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError(CodeInvalidPattern, "", ErrDuplicateParam).
		WithDetail("pattern", "/a/:id/:id")

	assert.Equal(t, "configuration error [1010]: Invalid route pattern (pattern=/a/:id/:id): parameter name used more than once", err.Error())
	assert.True(t, stderrors.Is(err, ErrDuplicateParam))

	wrapped := fmt.Errorf("registering scheme: %w", err)
	assert.True(t, IsConfigurationError(wrapped))
	assert.False(t, IsContractViolation(wrapped))
	assert.Equal(t, CodeInvalidPattern, CodeOf(wrapped))
}

func TestContractViolation(t *testing.T) {
	err := NewContractViolation("", ErrMissingOrigin)

	assert.Contains(t, err.Error(), "contract violation [4010]")
	assert.True(t, stderrors.Is(err, ErrMissingOrigin))
	assert.True(t, IsContractViolation(err))
	assert.Equal(t, CodeContractViolation, CodeOf(err))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternalError, CodeOf(stderrors.New("boom")))
}
