package gamedata

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(digits) != 6 {
		return tcell.ColorDefault, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"hex color must have six digits", map[string]string{"color": hex})
	}

	rgb, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return tcell.ColorDefault, apperrors.Wrap(apperrors.CodeInvalidArgument, "invalid hex color "+hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}
