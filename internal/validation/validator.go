// Package validation wraps go-playground/validator and maps its failures
// onto INVALID_ARGUMENT domain errors.
package validation

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct validates s using its `validate` tags. A failure is returned as an
// INVALID_ARGUMENT error whose metadata maps each offending field to the
// rule it broke.
func Struct(what string, s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "invalid "+what, err)
	}

	fields := make(map[string]string, len(validationErrors))
	names := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[field] = rule
		names = append(names, field+" ("+rule+")")
	}

	return apperrors.WithMetadata(
		apperrors.CodeInvalidArgument,
		"invalid "+what+": "+strings.Join(names, ", "),
		fields,
	)
}
