package domain

import "strings"

type Status int

const (
	StatusUnknown Status = iota
	StatusPresent
	StatusLate
	StatusAbsent
	StatusLeave
)

// ParseStatus accepts the backend spelling (VALID, LATE, ...) in any case
func ParseStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "VALID", "PRESENT":
		return StatusPresent
	case "LATE":
		return StatusLate
	case "ABSENT":
		return StatusAbsent
	case "LEAVE":
		return StatusLeave
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusLate:
		return "Late"
	case StatusAbsent:
		return "Absent"
	case StatusLeave:
		return "Leave"
	default:
		return "Unknown"
	}
}

// Worked is true for statuses where the employee clocked in
func (s Status) Worked() bool {
	return s == StatusPresent || s == StatusLate
}

type LocationType int

const (
	LocationOffice LocationType = iota
	LocationRemote
)

func ParseLocationType(raw string) LocationType {
	if raw == "clock_in" {
		return LocationOffice
	}
	return LocationRemote
}

func (l LocationType) String() string {
	if l == LocationOffice {
		return "Office"
	}
	return "Remote"
}
