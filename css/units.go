package css

import (
	"strconv"
	"strings"
)

// LengthUnits lists the units SILE understands for dimensions. Relative
// units are percentages of the page (pw, ph), frame (fw, fh), line (lw) and
// the larger/smaller side of either.
var LengthUnits = []string{
	"pt", "mm", "cm", "in",
	"%pw", "%ph", "%fw", "%fh", "%lw",
	"%pmax", "%pmin", "%fmax", "%fmin",
}

// IsLength reports whether value is a number followed by one of LengthUnits.
// A bare zero is accepted.
func IsLength(value string) bool {
	value = strings.TrimSpace(value)
	if value == "0" {
		return true
	}
	for _, unit := range LengthUnits {
		num, found := strings.CutSuffix(value, unit)
		if !found || num == "" {
			continue
		}
		if _, err := strconv.ParseFloat(num, 64); err == nil {
			return true
		}
	}
	return false
}
