package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timeOfDayRe = regexp.MustCompile(`(\d+):(\d+):(\d+)`)

// timestampLayouts are tried in order. The first is what the echo client writes.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/1/2 15:04:05",
	time.RFC3339,
	"1/2/2006 15:04:05",
}

// ParseQuantity strips the literal unit suffix from text ("42ms", "1.5%") and parses the rest
// as a finite float64. Surrounding whitespace is ignored.
func ParseQuantity(text, suffix string) (float64, error) {
	s := strings.TrimSpace(text)
	if suffix != "" {
		if !strings.HasSuffix(s, suffix) {
			return 0, &ParseError{Text: text, Err: fmt.Errorf("%w %q", ErrMissingSuffix, suffix)}
		}
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Text: text, Err: err}
	}
	// ParseFloat accepts "NaN" and "Inf"; neither is a measurement.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Text: text, Err: ErrNotFinite}
	}
	return v, nil
}

// TimeToFloat converts the first HH:MM:SS found in text to a fractional hour of day.
// "2019-05-04 12:14:44" -> 12 + 14/60 + 44/3600. The date part is ignored and the result is not clamped.
func TimeToFloat(text string) (float64, error) {
	m := timeOfDayRe.FindStringSubmatch(text)
	if m == nil {
		return 0, &ParseError{Text: text, Err: ErrNoTimeOfDay}
	}
	// \d+ always parses; overflow is the only failure left.
	var parts [3]float64
	for i := range parts {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, &ParseError{Text: text, Err: err}
		}
		parts[i] = v
	}
	return parts[0] + parts[1]/60.0 + parts[2]/3600.0, nil
}

// ParseTimestamp parses the date_time column using the known layouts (local time).
func ParseTimestamp(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Text: text, Err: ErrBadTimestamp}
}

// parseCount reads the echo client's counter fields ("200sent", "3lost", "123pps").
// Fields that do not carry the suffix are reported as not ok.
func parseCount(text, suffix string) (float64, bool) {
	v, err := ParseQuantity(text, suffix)
	if err != nil {
		return 0, false
	}
	return v, true
}
