package domain

import (
	"fmt"

	"github.com/Amund211/rollcall/internal/timefmt"
)

const DefaultLateBufferMinutes = 10

// IsLate reports whether clockIn is strictly after shiftStart plus the buffer.
// Arriving exactly at the end of the buffer is on time.
func IsLate(clockIn, shiftStart string, bufferMinutes int) (bool, error) {
	clockInMinutes, err := minutesSinceMidnight(clockIn)
	if err != nil {
		return false, fmt.Errorf("%w: clock in: %w", ErrInvalidInput, err)
	}

	shiftStartMinutes, err := minutesSinceMidnight(shiftStart)
	if err != nil {
		return false, fmt.Errorf("%w: shift start: %w", ErrInvalidInput, err)
	}

	return clockInMinutes > shiftStartMinutes+bufferMinutes, nil
}

func minutesSinceMidnight(raw string) (int, error) {
	clock, ok := timefmt.ParseClock(raw)
	if !ok {
		return 0, fmt.Errorf("not a time of day: %q", raw)
	}
	return clock.Hour*60 + clock.Minute, nil
}
