package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Palette holds the configurable colours used for party rows.
type Palette struct {
	HP tcell.Color
	MP tcell.Color
}

// NewPalette parses hex colours for the HP and MP bars.
func NewPalette(hp, mp string) (Palette, error) {
	hpColor, err := ParseHexColor(hp)
	if err != nil {
		return Palette{}, fmt.Errorf("hp colour: %w", err)
	}
	mpColor, err := ParseHexColor(mp)
	if err != nil {
		return Palette{}, fmt.Errorf("mp colour: %w", err)
	}
	return Palette{HP: hpColor, MP: mpColor}, nil
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	// Remove leading # if present
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewHexColor(int32(value)), nil
}
