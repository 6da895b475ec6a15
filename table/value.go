package table

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reSpaces        = regexp.MustCompile(`\s+`)
	reDotThousands  = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})+$`)
	reCommaThousand = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+$`)
)

// NormalizeSpaces collapses whitespace runs (including non-breaking spaces)
// into single spaces and trims the ends.
func NormalizeSpaces(input string) string {
	s := strings.ReplaceAll(input, "\u00a0", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// ParseCell converts a raw text cell into a typed value: empty cells and
// common NA markers become missing (nil), numeric tokens become float64,
// true/false become bool, anything else stays a trimmed string. Vendor exports
// mix decimal commas and thousands separators, so numeric tokens are
// normalized before parsing.
func ParseCell(raw string) any {
	s := NormalizeSpaces(raw)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "na", "n/a", "nan", "null", "none":
		return nil
	}
	if f, err := strconv.ParseFloat(normalizeNumericToken(s), 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// IsMissing reports whether a cell holds no value. Both nil and NaN count.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok {
		return math.IsNaN(f)
	}
	return false
}

// AsFloat extracts a numeric cell value.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func normalizeNumericToken(token string) string {
	compact := strings.ReplaceAll(token, " ", "")
	if reDotThousands.MatchString(compact) {
		return strings.ReplaceAll(compact, ".", "")
	}
	if reCommaThousand.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") && !strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	return compact
}
