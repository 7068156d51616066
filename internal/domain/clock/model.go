package clock

import "time"

// Position anchors the clock inside the viewport.
type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTop         Position = "top"
	PositionTopRight    Position = "top-right"
	PositionLeft        Position = "left"
	PositionCenter      Position = "center"
	PositionRight       Position = "right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottom      Position = "bottom"
	PositionBottomRight Position = "bottom-right"
)

// HourFormat selects 12 or 24 hour display.
type HourFormat int

const (
	Format12 HourFormat = 12
	Format24 HourFormat = 24
)

// Configuration is everything the page asked for through its query string.
// FG and BG hold either a validated "#hex" color or the raw CSS value the
// caller supplied.
type Configuration struct {
	Seconds      bool       `json:"seconds"`
	RandomColors bool       `json:"randomColors"`
	FG           string     `json:"fg"`
	BG           string     `json:"bg"`
	Font         string     `json:"font"`
	FontSize     string     `json:"fontSize"`
	ShowLink     bool       `json:"showLink"`
	Blink        bool       `json:"blink"`
	Position     Position   `json:"position"`
	Format       HourFormat `json:"format"`
	Pad          bool       `json:"pad"`
	BgImage      bool       `json:"bgImage"`
	Timezone     string     `json:"timezone"`

	Location *time.Location `json:"-"`
}

// State is the displayed time. Seconds is empty when the configuration
// does not show seconds.
type State struct {
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds,omitempty"`
}

// Layout is the two-axis flex alignment derived from a Position.
type Layout struct {
	AlignItems     string `json:"alignItems"`
	JustifyContent string `json:"justifyContent"`
}

// View is a full render frame: static style from the configuration plus
// the live clock, blink and background state.
type View struct {
	Color           string `json:"color"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	FontFamily      string `json:"fontFamily"`
	FontSize        string `json:"fontSize"`
	Layout          Layout `json:"layout"`
	ShowLink        bool   `json:"showLink"`
	LinkURL         string `json:"linkUrl,omitempty"`
	Time            State  `json:"time"`
	ColonOpacity    int    `json:"colonOpacity"`
}

// Config holds the service-wide knobs for overlay sessions.
type Config struct {
	TickInterval      time.Duration
	BlinkInterval     time.Duration
	BackgroundRefresh time.Duration
	Location          *time.Location
	SourceURL         string
}
