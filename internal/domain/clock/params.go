package clock

import (
	"math/rand/v2"
	"net/url"
	"strings"
	"time"
)

const (
	defaultFG       = "royalblue"
	defaultBG       = "black"
	defaultFontSize = "10em"
	defaultFont     = "system-ui, -apple-system, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif, 'Apple Color Emoji', 'Segoe UI Emoji'"
)

// Flag is a boolean query parameter. Presence alone turns it on.
type Flag string

const (
	FlagSeconds      Flag = "seconds"
	FlagRandomColors Flag = "randomColors"
	FlagShowLink     Flag = "showLink"
	FlagBlink        Flag = "blink"
	FlagPad          Flag = "pad"
	FlagBgImage      Flag = "bgImage"
)

// Flags lists every presence-tested parameter.
var Flags = []Flag{FlagSeconds, FlagRandomColors, FlagShowLink, FlagBlink, FlagPad, FlagBgImage}

// ParseFlags reports, for each known flag, whether it is present in query.
// The value of the parameter is ignored.
func ParseFlags(query url.Values) map[Flag]bool {
	out := make(map[Flag]bool, len(Flags))
	for _, f := range Flags {
		out[f] = query.Has(string(f))
	}
	return out
}

// Resolver turns page query parameters into a Configuration.
type Resolver struct {
	palettes []Palette
	location *time.Location
	pick     func(n int) int
}

// NewResolver builds a resolver drawing random palettes from palettes.
// fallback is used when the page does not name a valid timezone.
func NewResolver(palettes []Palette, fallback *time.Location) *Resolver {
	if fallback == nil {
		fallback = time.Local
	}
	return &Resolver{palettes: palettes, location: fallback, pick: rand.IntN}
}

// Resolve derives a Configuration. The only side effect is the random
// palette draw when randomColors is present.
func (r *Resolver) Resolve(query url.Values) Configuration {
	flags := ParseFlags(query)
	cfg := Configuration{
		Seconds:      flags[FlagSeconds],
		RandomColors: flags[FlagRandomColors],
		ShowLink:     flags[FlagShowLink],
		Blink:        flags[FlagBlink],
		Pad:          flags[FlagPad],
		BgImage:      flags[FlagBgImage],
		FG:           resolveColor(query.Get("fg"), defaultFG),
		BG:           resolveColor(query.Get("bg"), defaultBG),
		Font:         valueOr(query.Get("font"), defaultFont),
		FontSize:     valueOr(query.Get("fontSize"), defaultFontSize),
		Position:     Position(valueOr(query.Get("position"), string(PositionCenter))),
		Format:       parseFormat(query.Get("format")),
	}
	cfg.Location, cfg.Timezone = r.resolveLocation(query.Get("tz"))

	if cfg.RandomColors && len(r.palettes) > 0 {
		palette := r.palettes[r.pick(len(r.palettes))]
		cfg.FG = palette.Foreground()
		cfg.BG = palette.Background()
	}
	return cfg
}

// PinQuery rewrites query so resolving it again reproduces cfg's colors.
// A random palette draw is replaced by explicit fg/bg values; everything
// else is kept as the page received it.
func PinQuery(query url.Values, cfg Configuration) url.Values {
	pinned := make(url.Values, len(query))
	for k, v := range query {
		pinned[k] = append([]string(nil), v...)
	}
	if !cfg.RandomColors {
		return pinned
	}
	pinned.Del(string(FlagRandomColors))
	pinned.Set("fg", strings.TrimPrefix(cfg.FG, "#"))
	pinned.Set("bg", strings.TrimPrefix(cfg.BG, "#"))
	return pinned
}

func (r *Resolver) resolveLocation(name string) (*time.Location, string) {
	if name = strings.TrimSpace(name); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, loc.String()
		}
	}
	return r.location, r.location.String()
}

func parseFormat(raw string) HourFormat {
	if strings.TrimSpace(raw) == "12" {
		return Format12
	}
	return Format24
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
