package domain

import "time"

const (
	AttendanceHistoryDays  = 30
	AttendanceDatesPerPage = 10
)

type AttendanceDate struct {
	Date    string
	Weekday string
}

// AttendanceDatePage lists the days of the attendance history on the given
// 1-indexed page, most recent first. Out of range pages are empty.
func AttendanceDatePage(now time.Time, page, pageSize int) ([]AttendanceDate, int) {
	if pageSize <= 0 {
		pageSize = AttendanceDatesPerPage
	}
	totalPages := (AttendanceHistoryDays + pageSize - 1) / pageSize

	if page < 1 || page > totalPages {
		return []AttendanceDate{}, totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, AttendanceHistoryDays)

	dates := make([]AttendanceDate, 0, end-start)
	for i := start; i < end; i++ {
		day := now.UTC().AddDate(0, 0, -i)
		dates = append(dates, AttendanceDate{
			Date:    day.Format(time.DateOnly),
			Weekday: day.Weekday().String(),
		})
	}

	return dates, totalPages
}
