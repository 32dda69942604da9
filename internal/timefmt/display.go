// Package timefmt renders backend clock values in the dashboard's display zone (IST, UTC+5:30).
package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const Placeholder = "-"

// ISTOffset is the fixed shift applied to every displayed time
const ISTOffset = 5*time.Hour + 30*time.Minute

const displayLayout = "03:04 PM"

var twelveHourRx = regexp.MustCompile(`^(?i)(\d{1,2}):(\d{2})\s*(AM|PM)$`)
var twentyFourHourRx = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Clock is a wall-clock time of day without a date or zone
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) Add(d time.Duration) Clock {
	const day = 24 * 60
	total := (c.Hour*60 + c.Minute + int(d/time.Minute)) % day
	if total < 0 {
		total += day
	}
	return Clock{Hour: total / 60, Minute: total % 60}
}

func (c Clock) Format() string {
	return time.Date(0, time.January, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format(displayLayout)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock accepts "HH:MM", "HH:MM:SS" and "H:MM AM/PM"
func ParseClock(raw string) (Clock, bool) {
	raw = strings.TrimSpace(raw)

	if match := twelveHourRx.FindStringSubmatch(raw); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute, _ := strconv.Atoi(match[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return Clock{}, false
		}

		pm := strings.EqualFold(match[3], "PM")
		if pm && hour < 12 {
			hour += 12
		} else if !pm && hour == 12 {
			hour = 0
		}
		return Clock{Hour: hour, Minute: minute}, true
	}

	if match := twentyFourHourRx.FindStringSubmatch(raw); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute, _ := strconv.Atoi(match[2])
		if hour > 23 || minute > 59 {
			return Clock{}, false
		}
		if match[3] != "" {
			if second, _ := strconv.Atoi(match[3]); second > 59 {
				return Clock{}, false
			}
		}
		return Clock{Hour: hour, Minute: minute}, true
	}

	return Clock{}, false
}

func parseInstant(raw string) (time.Time, bool) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToDisplayTime shifts a backend time to IST and renders it as "hh:mm AM/PM".
//
// Datetimes are treated as instants and shifted by the offset. Bare times of day
// are assumed to be UTC wall-clock values and get the same offset added to their
// hour and minute, so a bare time that is already in IST is shifted twice.
// Anything else, including the "-" placeholder, is returned unchanged.
func ToDisplayTime(raw string) string {
	if raw == "" || raw == Placeholder {
		return raw
	}

	if clock, ok := ParseClock(raw); ok {
		return clock.Add(ISTOffset).Format()
	}

	if instant, ok := parseInstant(strings.TrimSpace(raw)); ok {
		return instant.UTC().Add(ISTOffset).Format(displayLayout)
	}

	return raw
}

// FormatClock is ToDisplayTime for optional values, rendering nil as the placeholder
func FormatClock(raw *string) string {
	if raw == nil || *raw == "" {
		return Placeholder
	}
	return ToDisplayTime(*raw)
}

// FormatShift renders a shift as "start - end" in display time
func FormatShift(start, end string) string {
	if start == "" && end == "" {
		return Placeholder
	}
	return fmt.Sprintf("%s - %s", ToDisplayTime(start), ToDisplayTime(end))
}
