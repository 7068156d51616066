package clock

import "strings"

const (
	alignStart  = "flex-start"
	alignCenter = "center"
	alignEnd    = "flex-end"
)

// LayoutFor maps a position to flex alignment. top/bottom anchor the cross
// axis, left/right the main axis; anything unrecognised is centered.
func LayoutFor(p Position) Layout {
	layout := Layout{AlignItems: alignCenter, JustifyContent: alignCenter}
	s := string(p)

	switch {
	case strings.Contains(s, "top"):
		layout.AlignItems = alignStart
	case strings.Contains(s, "bottom"):
		layout.AlignItems = alignEnd
	}

	switch {
	case strings.Contains(s, "left"):
		layout.JustifyContent = alignStart
	case strings.Contains(s, "right"):
		layout.JustifyContent = alignEnd
	}
	return layout
}

// ColonOpacity hides the colons during the off phase of a blinking clock.
func ColonOpacity(cfg Configuration, off bool) int {
	if cfg.Blink && off {
		return 0
	}
	return 1
}

// Render builds the frame for the current clock, blink and background state.
// An empty background URL means no background image.
func Render(cfg Configuration, state State, blinkOff bool, background string) View {
	view := View{
		Color:        cfg.FG,
		FontFamily:   cfg.Font,
		FontSize:     cfg.FontSize,
		Layout:       LayoutFor(cfg.Position),
		ShowLink:     cfg.ShowLink,
		Time:         state,
		ColonOpacity: ColonOpacity(cfg, blinkOff),
	}
	if cfg.BgImage {
		if background != "" {
			view.BackgroundImage = `url("` + background + `")`
		}
	} else {
		view.BackgroundColor = cfg.BG
	}
	return view
}
