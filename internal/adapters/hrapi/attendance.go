package hrapi

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Amund211/rollcall/internal/domain"
)

type locationWire struct {
	DistanceKm float64 `json:"distance_km"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Type       string  `json:"type"`
}

func (l locationWire) toDomain() domain.Location {
	return domain.Location{
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		DistanceKm: l.DistanceKm,
		Type:       domain.ParseLocationType(l.Type),
	}
}

type attendanceRecordWire struct {
	ID               string        `json:"id"`
	Date             string        `json:"date"`
	EmployeeID       string        `json:"employee_id"`
	EmployeeName     string        `json:"employee_name"`
	Status           string        `json:"status"`
	ClockIn          *string       `json:"clock_in"`
	ClockOut         *string       `json:"clock_out"`
	HoursWorked      float64       `json:"hours_worked"`
	Location         *locationWire `json:"location"`
	ClockOutLocation *locationWire `json:"clock_out_location"`
	CreatedDate      string        `json:"created_date"`
	LastModifiedDate string        `json:"last_modified_date"`
}

func nonEmpty(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}

func (r attendanceRecordWire) toDomain() domain.AttendanceRecord {
	id := r.ID
	if id == "" {
		id = "attendance-" + uuid.NewString()
	}

	name := r.EmployeeName
	if name == "" {
		name = domain.UnknownEmployeeName
	}

	rawStatus := r.Status
	if rawStatus == "" {
		rawStatus = "VALID"
	}

	location := locationWire{Type: "clock_in"}
	if r.Location != nil {
		location = *r.Location
	}

	record := domain.AttendanceRecord{
		ID:               id,
		Date:             r.Date,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     name,
		Status:           domain.ParseStatus(rawStatus),
		RawStatus:        rawStatus,
		ClockIn:          nonEmpty(r.ClockIn),
		ClockOut:         nonEmpty(r.ClockOut),
		HoursWorked:      r.HoursWorked,
		Location:         location.toDomain(),
		CreatedDate:      r.CreatedDate,
		LastModifiedDate: r.LastModifiedDate,
	}
	if r.ClockOutLocation != nil {
		clockOut := r.ClockOutLocation.toDomain()
		record.ClockOutLocation = &clockOut
	}
	return record
}

func toDomainRecords(wire []attendanceRecordWire) []domain.AttendanceRecord {
	records := make([]domain.AttendanceRecord, 0, len(wire))
	for _, record := range wire {
		records = append(records, record.toDomain())
	}
	return records
}

// DecodeAttendanceRecords requires a non-null data array
func DecodeAttendanceRecords(body []byte) ([]domain.AttendanceRecord, error) {
	var wire []attendanceRecordWire
	if err := decodeData(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode attendance records: %w", err)
	}
	return toDomainRecords(wire), nil
}

// DecodeOptionalAttendanceRecords treats a null data field as no records
func DecodeOptionalAttendanceRecords(body []byte) ([]domain.AttendanceRecord, error) {
	var wire []attendanceRecordWire
	if err := decodeOptionalData(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode attendance records: %w", err)
	}
	return toDomainRecords(wire), nil
}
