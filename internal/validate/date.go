package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	timeRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,6}))?$`)
)

// TemporalInput is either a date string (DateString) or a value that is
// already a time.Time (DateValue). Native values pass through untouched.
type TemporalInput interface {
	temporalInput()
}

type dateString string

type dateValue time.Time

func (dateString) temporalInput() {}
func (dateValue) temporalInput()  {}

// DateString wraps a MySQL style "YYYY-MM-DD" or "YYYY-MM-DD HH:MM:SS[.ffffff]" string.
func DateString(s string) TemporalInput { return dateString(s) }

// DateValue wraps an already parsed time.
func DateValue(t time.Time) TemporalInput { return dateValue(t) }

// ClockTime is a validated wall-clock time. Microsecond holds the optional
// fractional part, ".5" being 500000.
type ClockTime struct {
	Hour        int
	Minute      int
	Second      int
	Microsecond int
}

// String renders HH:MM:SS, with a six digit fraction when one is set.
func (c ClockTime) String() string {
	if c.Microsecond == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%06d", c.Hour, c.Minute, c.Second, c.Microsecond)
}

// ValidateDate checks a "YYYY-MM-DD" string against the Gregorian calendar and
// returns it as midnight UTC.
func ValidateDate(in TemporalInput) (time.Time, error) {
	switch v := in.(type) {
	case dateValue:
		return time.Time(v), nil
	case dateString:
		return parseDate(string(v))
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported date input %T", ErrInvalidFormat, in)
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidFormat, s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	// time.Date normalizes overflow (Feb 30 -> Mar 2); a real date survives the round trip
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if year < 1 || month < 1 || month > 12 || t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: date %q is not a Gregorian date", ErrOutOfRange, s)
	}
	return t, nil
}

// ValidateTime checks a "HH:MM:SS" string with an optional 1-6 digit fraction.
func ValidateTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return ClockTime{}, fmt.Errorf("%w: time %q is not HH:MM:SS[.ffffff]", ErrInvalidFormat, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second, _ := strconv.Atoi(m[3])
	if hour >= 24 || minute >= 60 || second >= 60 {
		return ClockTime{}, fmt.Errorf("%w: time %q is not a valid wall clock time", ErrOutOfRange, s)
	}

	micro := 0
	if frac := m[4]; frac != "" {
		micro, _ = strconv.Atoi(frac + strings.Repeat("0", 6-len(frac)))
	}
	return ClockTime{Hour: hour, Minute: minute, Second: second, Microsecond: micro}, nil
}

// ValidateDateTime checks a "YYYY-MM-DD HH:MM:SS[.ffffff]" string. Errors from
// the date or time part keep their kind and message.
func ValidateDateTime(in TemporalInput) (time.Time, error) {
	v, ok := in.(dateString)
	if !ok {
		if tv, ok := in.(dateValue); ok {
			return time.Time(tv), nil
		}
		return time.Time{}, fmt.Errorf("%w: unsupported datetime input %T", ErrInvalidFormat, in)
	}

	parts := strings.Split(strings.TrimSpace(string(v)), " ")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("%w: datetime %q must be a date and a time separated by a space", ErrInvalidFormat, string(v))
	}
	date, err := parseDate(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("datetime: %w", err)
	}
	clock, err := ValidateTime(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("datetime: %w", err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour, clock.Minute, clock.Second, clock.Microsecond*int(time.Microsecond), time.UTC), nil
}
