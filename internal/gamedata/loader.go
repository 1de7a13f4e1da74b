package gamedata

import (
	"bytes"
	"encoding/json"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
)

// Load reads and decodes a JSON file from the embedded filesystem. Unknown
// fields are rejected so a typo in a data file fails at startup.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, apperrors.Wrap(apperrors.CodeNotFound, "failed to read embedded file "+filename, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, apperrors.Wrap(apperrors.CodeInvalidArgument, "failed to parse JSON from "+filename, err)
	}

	return result, nil
}
