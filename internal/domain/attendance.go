package domain

const UnknownEmployeeName = "Unknown Employee"

type Location struct {
	Latitude   float64
	Longitude  float64
	DistanceKm float64
	Type       LocationType
}

type AttendanceRecord struct {
	ID           string
	Date         string
	EmployeeID   string
	EmployeeName string

	Status Status
	// RawStatus is the status as sent by the backend, shown for unknown statuses
	RawStatus string

	ClockIn          *string
	ClockOut         *string
	HoursWorked      float64
	Location         Location
	ClockOutLocation *Location

	CreatedDate      string
	LastModifiedDate string
}

// StatusLabel is the badge text for the record
func (r AttendanceRecord) StatusLabel() string {
	if r.Status == StatusUnknown {
		if r.RawStatus == "" {
			return "Unknown"
		}
		return r.RawStatus
	}
	return r.Status.String()
}

// ShowsLocation is false for absences and leave, which have no meaningful clock-in location
func (r AttendanceRecord) ShowsLocation() bool {
	return r.Status != StatusAbsent && r.Status != StatusLeave
}

// DedupeByEmployee keeps the first record seen for each employee, preserving order.
// Records without an employee id are dropped.
func DedupeByEmployee(records []AttendanceRecord) []AttendanceRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]AttendanceRecord, 0, len(records))

	for _, record := range records {
		if record.EmployeeID == "" {
			continue
		}
		if _, ok := seen[record.EmployeeID]; ok {
			continue
		}
		seen[record.EmployeeID] = struct{}{}
		unique = append(unique, record)
	}

	return unique
}
