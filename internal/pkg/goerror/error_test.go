package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapBusinessKeepsCause(t *testing.T) {
	cause := errors.New("clipboard is empty")

	err := WrapBusiness(cause, "Clipboard empty", CodeInvalidInput)

	require.ErrorIs(t, err, cause)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Clipboard empty", gerr.Msg())
	assert.Equal(t, TypeBusiness, gerr.Type())
	assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode())
}

func TestNewInvalidInputFields(t *testing.T) {
	err := NewInvalidInput(nil, "index", "must be between 0 and 5")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, map[string]string{"index": "must be between 0 and 5"}, gerr.Fields())
	assert.Equal(t, CodeInvalidInput, gerr.Code())

	odd := NewInvalidInput(nil, "index")
	require.ErrorAs(t, odd, &gerr)
	assert.Equal(t, CodeInvalidFormat, gerr.Code())
}

func TestStatusCodeMapping(t *testing.T) {
	cases := map[Code]int{
		CodeInternal:      http.StatusInternalServerError,
		CodeInvalidFormat: http.StatusBadRequest,
		CodeInvalidInput:  http.StatusUnprocessableEntity,
		CodeNotFound:      http.StatusNotFound,
		CodeGone:          http.StatusGone,
	}

	for code, want := range cases {
		t.Run(code.String(), func(t *testing.T) {
			gerr := &Error{code: code}
			assert.Equal(t, want, gerr.StatusCode())
		})
	}
}

func TestNewServerMessage(t *testing.T) {
	err := NewServer(errors.New("boom"))

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Internal server error", gerr.Msg())
	assert.Equal(t, "boom", err.Error())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "ERROR_TYPE_BUSINESS", TypeBusiness.String())
	assert.Equal(t, "ERROR_TYPE_UNKNOWN", Type(99).String())
	assert.Equal(t, "ERROR_CODE_GONE", CodeGone.String())
	assert.Equal(t, "ERROR_CODE_INTERNAL", Code(99).String())

	gerr := &Error{code: Code(99)}
	assert.Equal(t, http.StatusInternalServerError, gerr.StatusCode())
	assert.Equal(t, "Internal error", gerr.Error())
	assert.Equal(t, "Validation violation", (&Error{errType: TypeValidation}).Error())
}
