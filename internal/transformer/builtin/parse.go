package builtin

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"playeretl/internal/value"
)

// The scalar parsers below never fail: any input they cannot interpret
// becomes value.Null(). They are pure and safe to call on their own output.

// NotForSale is the Transfer Value marker for players without a price.
const NotForSale = "Not for Sale"

// DOBLayout is the day/month/year layout of birth dates in the export. Day and
// month may have one or two digits.
const DOBLayout = "2/1/2006"

var (
	heightPattern = regexp.MustCompile(`^(\d+)'(\d+)?$`)
	datePrefix    = regexp.MustCompile(`^[\d/]+`)
)

// ParseCurrency converts a Transfer Value cell such as "$1,200,000" into a
// float. Missing, NotForSale and anything that is not a number once "$" and
// "," are removed yield Missing. No rounding is applied.
func ParseCurrency(v value.Value) value.Value {
	if v.IsMissing() {
		return v
	}
	if n, ok := v.Number(); ok {
		return value.Float64(n)
	}
	s := v.String()
	if s == NotForSale {
		return value.Null()
	}
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	return parseNumber(s)
}

// ParseWeight converts a Weight cell such as "70kg" or "70" into kilograms.
// Numeric cells are already kilograms and pass through as floats.
func ParseWeight(v value.Value) value.Value {
	if v.IsMissing() {
		return v
	}
	if n, ok := v.Number(); ok {
		return value.Float64(n)
	}
	return parseNumber(strings.ReplaceAll(v.String(), "kg", ""))
}

// ParseHeight converts feet-and-inches notation (5'6", 5' 6, 6') into
// centimetres rounded to one decimal. Inches default to 0. Text in any other
// shape, including metric text such as "180cm", yields Missing. Numeric cells
// are taken to be centimetres already and pass through as floats.
func ParseHeight(v value.Value) value.Value {
	if v.IsMissing() {
		return v
	}
	if n, ok := v.Number(); ok {
		return value.Float64(n)
	}
	s := strings.Map(func(r rune) rune {
		if r == '"' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v.String())

	m := heightPattern.FindStringSubmatch(s)
	if m == nil {
		return value.Null()
	}
	feet, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return value.Null()
	}
	var inches float64
	if m[2] != "" {
		if inches, err = strconv.ParseFloat(m[2], 64); err != nil {
			return value.Null()
		}
	}
	cm := (feet*12 + inches) * 2.54
	return value.Float64(math.Round(cm*10) / 10)
}

// ParseDOB extracts the leading day/month/year date of a DOB cell such as
// "15/06/2000 (21)". Anything after the date is ignored; an unparsable date
// yields Missing. Date cells pass through.
func ParseDOB(v value.Value) value.Value {
	if v.IsMissing() || v.Kind() == value.Date {
		return v
	}
	prefix := datePrefix.FindString(v.String())
	if prefix == "" {
		return value.Null()
	}
	t, err := time.Parse(DOBLayout, prefix)
	if err != nil {
		return value.Null()
	}
	return value.DateOf(t)
}

// parseNumber parses a trimmed decimal number. Hexadecimal literals are not
// numbers in the export and are rejected; overflow saturates to ±Inf.
func parseNumber(s string) value.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return value.Null()
	}
	unsigned := strings.TrimLeft(s, "+-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return value.Null()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return value.Null()
	}
	return value.Float64(f)
}
