package clock

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

//go:embed palettes.json
var paletteData []byte

// Palette is an ordered set of hex colors. Random color mode uses the
// first entry as foreground and the last as background.
type Palette []string

// Foreground returns the first color of the palette.
func (p Palette) Foreground() string { return p[0] }

// Background returns the last color of the palette.
func (p Palette) Background() string { return p[len(p)-1] }

// LoadPalettes decodes a JSON array of palettes and normalises every color
// to lowercase #rrggbb.
func LoadPalettes(data []byte) ([]Palette, error) {
	var raw [][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode palettes: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("palette table is empty")
	}
	out := make([]Palette, 0, len(raw))
	for i, entry := range raw {
		if len(entry) < 2 {
			return nil, fmt.Errorf("palette %d: need at least two colors", i)
		}
		p := make(Palette, 0, len(entry))
		for _, hex := range entry {
			c, err := colorful.Hex(hex)
			if err != nil {
				return nil, fmt.Errorf("palette %d: %w", i, err)
			}
			p = append(p, c.Hex())
		}
		out = append(out, p)
	}
	return out, nil
}

// MustLoadPalettes returns the embedded palette table.
func MustLoadPalettes() []Palette {
	palettes, err := LoadPalettes(paletteData)
	if err != nil {
		panic(err)
	}
	return palettes
}
