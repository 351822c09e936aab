package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", FieldError("email", "The email field is required."), KindValidation},
		{"conflict", Conflict("The isbn field must be unique"), KindConflict},
		{"not found", NotFound("book"), KindNotFound},
		{"forbidden", Forbidden("not your review"), KindForbidden},
		{"unauthorized", Unauthorized("invalid credentials"), KindUnauthorized},
		{"internal", Internal("boom", errors.New("disk")), KindInternal},
		{"plain error", errors.New("plain"), KindInternal},
		{"wrapped", fmt.Errorf("create book: %w", Conflict("dup")), KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsKind_Nil(t *testing.T) {
	assert.False(t, IsKind(nil, KindInternal))
}

func TestError_Message(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("failed to create book", cause)

	assert.Equal(t, "failed to create book: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "book not found", NotFound("book").Error())
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", FieldError("password", "The password confirmation does not match."))

	appErr := As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, []string{"The password confirmation does not match."}, appErr.Fields["password"])

	assert.Nil(t, As(errors.New("plain")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "validation_error", KindValidation.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "forbidden", KindForbidden.String())
	assert.Equal(t, "unauthorized", KindUnauthorized.String())
	assert.Equal(t, "internal_error", KindInternal.String())
}
