package category

import (
	"strings"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// validateName trims name and rejects it when empty.
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", types.NewValidationError("name", "required")
	}
	return name, nil
}

// colorOrDefault returns the first palette color for an empty color.
func colorOrDefault(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return types.DefaultPalette[0]
	}
	return color
}
