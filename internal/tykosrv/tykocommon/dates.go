package tykocommon

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Precision tells how much of a stored date is meaningful.
type Precision int

const (
	PrecisionYear  Precision = 1 // YYYY
	PrecisionMonth Precision = 2 // M/YYYY
	PrecisionDay   Precision = 3 // M/D/YYYY
)

var precisionLayouts = map[Precision]string{
	PrecisionYear:  "2006",
	PrecisionMonth: "1/2006",
	PrecisionDay:   "1/2/2006",
}

var precisionPatterns = []struct {
	precision Precision
	re        *regexp.Regexp
}{
	{PrecisionYear, regexp.MustCompile(`^\d{4}$`)},
	{PrecisionMonth, regexp.MustCompile(`^[0-1]?\d/\d{4}$`)},
	{PrecisionDay, regexp.MustCompile(`^[0-1]?\d/[0-3]?\d/\d{4}$`)},
}

// IdentifyPrecision returns the precision of a date string written as YYYY, M/YYYY or
// M/D/YYYY.
func IdentifyPrecision(s string) (Precision, error) {
	for _, p := range precisionPatterns {
		if p.re.MatchString(s) {
			return p.precision, nil
		}
	}
	return 0, ErrInvalidDate.Msg(fmt.Sprintf("unable to identify date precision of %q", s))
}

// ParsePrecisionDate parses s at the given precision. Missing parts of the date are
// the first month or day.
func ParsePrecisionDate(s string, precision Precision) (time.Time, error) {
	layout, ok := precisionLayouts[precision]
	if !ok {
		return time.Time{}, ErrInvalidDate.Msg(fmt.Sprintf("unknown date precision %d", precision))
	}
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate.Msg(fmt.Sprintf("invalid date %q", s))
	}
	return t, nil
}

// ParseDetectedDate identifies the precision of s and parses it.
func ParseDetectedDate(s string) (time.Time, Precision, error) {
	p, err := IdentifyPrecision(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, 0, err
	}
	t, err := ParsePrecisionDate(s, p)
	if err != nil {
		return time.Time{}, 0, err
	}
	return t, p, nil
}

// FormatPrecisionDate writes t at the given precision without zero padding.
func FormatPrecisionDate(t time.Time, precision Precision) (string, error) {
	layout, ok := precisionLayouts[precision]
	if !ok {
		return "", ErrInvalidDate.Msg(fmt.Sprintf("unknown date precision %d", precision))
	}
	return t.Format(layout), nil
}

// FormatDate writes an optional date as M/D/YYYY. A nil date is returned as nil so
// that it serializes as JSON null.
func FormatDate(t *time.Time) *string {
	return FormatDateWithPrecision(t, PrecisionDay)
}

// FormatDateWithPrecision is FormatDate at an explicit precision. An unknown precision
// falls back to the full date.
func FormatDateWithPrecision(t *time.Time, precision Precision) *string {
	if t == nil {
		return nil
	}
	s, err := FormatPrecisionDate(*t, precision)
	if err != nil {
		s = t.Format(precisionLayouts[PrecisionDay])
	}
	return &s
}

// ParseDate parses an optional M/D/YYYY date. Blank input is nil.
func ParseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParsePrecisionDate(s, PrecisionDay)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
