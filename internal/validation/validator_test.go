package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
)

type sample struct {
	Name  string `validate:"required"`
	Power int    `validate:"gt=0"`
	Kind  string `validate:"oneof=melee ranged magic"`
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct("sample", sample{Name: "Sword", Power: 3, Kind: "melee"}))
}

func TestStructInvalidMapsToInvalidArgument(t *testing.T) {
	err := Struct("sample", sample{Power: 0, Kind: "thrown"})
	require.Error(t, err)

	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "required", domainErr.Metadata["name"])
	assert.Equal(t, "gt=0", domainErr.Metadata["power"])
	assert.Equal(t, "oneof=melee ranged magic", domainErr.Metadata["kind"])
	assert.Contains(t, err.Error(), "invalid sample")
}
