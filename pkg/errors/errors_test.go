// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "template_error",
			code:    errors.ErrTemplate,
			message: "unknown macro $foo",
			wantStr: "[TEMPLATE] unknown macro $foo",
		},
		{
			name:    "config_invalid_error",
			code:    errors.ErrConfigValid,
			message: "stage test must be a list",
			wantStr: "[CONFIG_INVALID] stage test must be a list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details, "details should be initialized")
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrConfigValid, "stage %q rule %d: missing path", "lint", 2)
	assert.Equal(t, `stage "lint" rule 2: missing path`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrConfigLoad, "cannot read moopad.yaml")

		assert.Equal(t, errors.ErrConfigLoad, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[CONFIG_LOAD] cannot read moopad.yaml: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrTemplate, "unknown macro").
		WithDetail("macro", "foo").
		WithDetail("field", "run")

	assert.Equal(t, "foo", err.Details["macro"])
	assert.Equal(t, "run", err.Details["field"])

	err = err.WithDetails(map[string]interface{}{"stage": "test", "index": 3})
	assert.Equal(t, "test", err.Details["stage"])
	assert.Equal(t, 3, errors.GetErrorDetails(err)["index"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrTemplate, "error 1")
	err2 := errors.New(errors.ErrTemplate, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2), "same code should match")
	assert.False(t, err1.Is(err3), "different codes should not match")
	assert.True(t, stderrors.Is(err1, err2), "errors.Is should work with MoopadError")
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrTemplate, "bad"), errors.ErrTemplate, true},
		{"different_code", errors.New(errors.ErrTemplate, "bad"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrConfigParse, "bad yaml"), errors.ErrConfigParse, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestIsConfigError(t *testing.T) {
	assert.True(t, errors.IsConfigError(errors.New(errors.ErrConfigLoad, "x")))
	assert.True(t, errors.IsConfigError(errors.New(errors.ErrConfigParse, "x")))
	assert.True(t, errors.IsConfigError(errors.New(errors.ErrConfigValid, "x")))
	assert.False(t, errors.IsConfigError(errors.New(errors.ErrTemplate, "x")))
	assert.False(t, errors.IsConfigError(nil))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrChangesLoad, errors.GetErrorCode(errors.New(errors.ErrChangesLoad, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard error")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestErrorChaining(t *testing.T) {
	// Create a chain of errors
	rootCause := stderrors.New("root cause")
	parseErr := errors.Wrap(rootCause, errors.ErrConfigParse, "cannot parse yaml")
	loadErr := errors.Wrap(parseErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(loadErr, errors.ErrConfigLoad))

	var inner *errors.MoopadError
	require.True(t, stderrors.As(loadErr.Unwrap(), &inner))
	assert.Equal(t, errors.ErrConfigParse, inner.Code)

	assert.True(t, stderrors.Is(loadErr, rootCause), "should find root cause with errors.Is")
}
