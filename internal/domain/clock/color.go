package clock

// isHexColor accepts #rgb, #rgba, #rrggbb and #rrggbbaa.
func isHexColor(s string) bool {
	if len(s) == 0 || s[0] != '#' {
		return false
	}
	digits := s[1:]
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// resolveColor prefixes well formed hex values with '#'. Everything else is
// handed to the browser verbatim, so named colors and rgb() work too.
func resolveColor(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	if candidate := "#" + raw; isHexColor(candidate) {
		return candidate
	}
	return raw
}
