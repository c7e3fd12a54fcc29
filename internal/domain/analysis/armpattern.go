package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// armPatternRule renders the arm-usage rule for the prompt. Unknown patterns
// are not an error: the model is told to infer the arm visually instead.
func armPatternRule(pattern, startingArm string, interval float64) string {
	start := strings.ToLower(strings.TrimSpace(startingArm))
	other := "right"
	if start == "right" {
		other = "left"
	}

	switch pattern {
	case PatternLeftOnly:
		return "Every rep is performed with the LEFT arm only."
	case PatternRightOnly:
		return "Every rep is performed with the RIGHT arm only."
	case PatternAlternatingSets:
		return fmt.Sprintf(
			"Arms alternate between sets, starting with the %s arm: odd-numbered sets (1st, 3rd, 5th, ...) use the %s arm, even-numbered sets use the %s arm. A new set starts every %s seconds.",
			start, start, other, formatNumber(interval))
	case PatternAlternatingReps:
		return fmt.Sprintf(
			"Arms alternate on every rep, starting with the %s arm: rep 1 uses the %s arm, rep 2 uses the %s arm, and so on.",
			start, start, other)
	case PatternBoth:
		return "Every rep is performed with BOTH hands on the bell simultaneously."
	default:
		return "There is no fixed arm rule; determine which arm performs each rep from what is visible in the video."
	}
}

// formatNumber prints protocol numbers verbatim, without trailing zeros, so
// the compiled prompt stays byte-stable for equal inputs.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
