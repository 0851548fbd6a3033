package decimal

import (
	"regexp"
	"strconv"
	"strings"
)

// Discount percentages travel in two shapes: the edit form uses a comma
// separator ("1,55") and at most two decimals, storage uses a plain
// dot-decimal number (1.55).
var commaDecimalPattern = regexp.MustCompile(`^\d{1,2}(,\d{1,2})?$`)

// ParseCommaDecimal converts a form value like "1,55" to its numeric
// value. The second return value reports whether the input matched the
// accepted pattern.
func ParseCommaDecimal(value string) (float64, bool) {
	if !commaDecimalPattern.MatchString(value) {
		return 0, false
	}

	parsed, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}

	return parsed, true
}

// FormatCommaDecimal renders a stored percentage for the edit form.
// Zero renders as an empty field rather than "0".
func FormatCommaDecimal(value float64) string {
	if value == 0 {
		return ""
	}

	return strings.Replace(strconv.FormatFloat(value, 'f', -1, 64), ".", ",", 1)
}
