package clock

import (
	"fmt"
	"strconv"
	"time"
)

// FormatTime renders t for display under cfg.
func FormatTime(t time.Time, cfg Configuration) State {
	if cfg.Location != nil {
		t = t.In(cfg.Location)
	}
	hour := t.Hour()
	if cfg.Format == Format12 {
		hour %= 12
		if hour == 0 {
			hour = 12
		}
	}
	hours := strconv.Itoa(hour)
	if cfg.Pad && len(hours) < 2 {
		hours = "0" + hours
	}
	state := State{
		Hours:   hours,
		Minutes: fmt.Sprintf("%02d", t.Minute()),
	}
	if cfg.Seconds {
		state.Seconds = fmt.Sprintf("%02d", t.Second())
	}
	return state
}
