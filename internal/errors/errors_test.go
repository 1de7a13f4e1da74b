package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeNotFound, "weapon slot is empty")

	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrInvalidState))

	wrapped := fmt.Errorf("unequip: %w", err)
	assert.True(t, stderrors.Is(wrapped, ErrNotFound), "code should survive fmt wrapping")
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(CodeInvalidArgument, "bad weapon", cause)

	assert.Equal(t, "bad weapon: boom", err.Error())
	assert.Same(t, cause, stderrors.Unwrap(err))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"plain", stderrors.New("x"), CodeUnknown},
		{"domain", New(CodeInvalidState, "x"), CodeInvalidState},
		{"wrapped", fmt.Errorf("ctx: %w", New(CodeInterrupted, "x")), CodeInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsActionRejection(t *testing.T) {
	assert.True(t, IsActionRejection(New(CodeInvalidArgument, "x")))
	assert.True(t, IsActionRejection(New(CodeNotFound, "x")))
	assert.True(t, IsActionRejection(New(CodeInvalidState, "x")))
	assert.False(t, IsActionRejection(New(CodeInterrupted, "x")))
	assert.False(t, IsActionRejection(stderrors.New("x")))
	assert.False(t, IsActionRejection(nil))
}
