package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/Amund211/rollcall/internal/domain"
	"github.com/Amund211/rollcall/internal/timefmt"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return timefmt.Placeholder
	}
	return value
}

// FormatShift renders the shift in display time, with its length when known
func FormatShift(shift domain.ShiftHours) string {
	formatted := timefmt.FormatShift(shift.Start, shift.End)
	if shift.Hours > 0 && formatted != timefmt.Placeholder {
		formatted += fmt.Sprintf(" (%s Hours)", strconv.FormatFloat(shift.Hours, 'f', -1, 64))
	}
	return formatted
}

// FormatCTC renders the compensation as currency, amount and frequency.
// The currency defaults to $.
func FormatCTC(ctc domain.CTC) string {
	if ctc.Amount == 0 {
		return "$0"
	}
	currency := ctc.Currency
	if currency == "" {
		currency = "$"
	}
	return strings.TrimSpace(fmt.Sprintf("%s%s %s", currency, humanize.Commaf(ctc.Amount), ctc.Frequency))
}

func renderEmployees(w io.Writer, styles Styles, employees []domain.Employee) error {
	if len(employees) == 0 {
		_, err := fmt.Fprintln(w, styles.muted.Render("No employees found"))
		return err
	}

	table := newTable(w)
	fmt.Fprintln(table, "ID\tNAME\tEMAIL\tDEPARTMENT\tDESIGNATION\tSHIFT")
	for _, employee := range employees {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\t%s\n",
			employee.ID,
			employee.DisplayName(),
			orPlaceholder(employee.Email),
			orPlaceholder(employee.Department),
			orPlaceholder(employee.Designation),
			FormatShift(employee.ShiftHours),
		)
	}
	return table.Flush()
}

func renderEmployee(w io.Writer, styles Styles, employee domain.Employee) error {
	fmt.Fprintln(w, styles.title.Render(employee.DisplayName()))

	table := newTable(w)
	rows := [][2]string{
		{"ID", employee.ID},
		{"Email", employee.Email},
		{"Phone", employee.PhoneNumber},
		{"Job title", employee.JobTitle},
		{"Designation", employee.Designation},
		{"Department", employee.Department},
		{"Location", employee.Location},
		{"Hire date", employee.HireDate},
		{"Shift", FormatShift(employee.ShiftHours)},
		{"CTC", FormatCTC(employee.CTC)},
		{"Address", employee.Address},
		{"Date of birth", employee.DateOfBirth},
		{"Blood type", employee.BloodType},
	}
	if employee.Age > 0 {
		rows = append(rows, [2]string{"Age", strconv.Itoa(employee.Age)})
	}
	for _, row := range rows {
		fmt.Fprintf(table, "%s\t%s\n", row[0], orPlaceholder(row[1]))
	}
	return table.Flush()
}

func formatHours(hours float64) string {
	if hours <= 0 {
		return timefmt.Placeholder
	}
	return strconv.FormatFloat(hours, 'f', 2, 64)
}

func renderAttendance(w io.Writer, styles Styles, records []domain.AttendanceRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, styles.muted.Render("No attendance records found"))
		return err
	}

	table := newTable(w)
	fmt.Fprintln(table, "DATE\tEMPLOYEE\tSTATUS\tCLOCK IN\tCLOCK OUT\tHOURS\tLOCATION")
	for _, record := range records {
		location := timefmt.Placeholder
		if record.ShowsLocation() {
			location = styles.LocationBadge(record.Location.Type)
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			orPlaceholder(record.Date),
			record.EmployeeName,
			styles.StatusBadge(record),
			timefmt.FormatClock(record.ClockIn),
			timefmt.FormatClock(record.ClockOut),
			formatHours(record.HoursWorked),
			location,
		)
	}
	return table.Flush()
}

func renderAttendanceDates(w io.Writer, styles Styles, dates []domain.AttendanceDate, page, totalPages int) error {
	if len(dates) == 0 {
		_, err := fmt.Fprintf(w, "%s\n", styles.muted.Render(fmt.Sprintf("No dates on page %d of %d", page, totalPages)))
		return err
	}

	table := newTable(w)
	fmt.Fprintln(table, "DATE\tDAY")
	for _, date := range dates {
		fmt.Fprintf(table, "%s\t%s\n", date.Date, date.Weekday)
	}
	if err := table.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, styles.muted.Render(fmt.Sprintf("Page %d of %d", page, totalPages)))
	return err
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatCoordinates(location domain.Coordinates) string {
	return fmt.Sprintf("%.6f, %.6f", location.Latitude, location.Longitude)
}

// renderConfig lists the settings. saved is the locally stored office location, if any.
func renderConfig(w io.Writer, styles Styles, config domain.Configuration, saved *domain.Coordinates) error {
	fmt.Fprintln(w, styles.title.Render("Attendance settings"))

	table := newTable(w)
	rows := [][2]string{
		{"Office location", formatCoordinates(config.OfficeLocation)},
		{"Allowed radius", fmt.Sprintf("%s km", strconv.FormatFloat(config.AllowedRadiusKm, 'f', -1, 64))},
		{"Enforce geofence", yesNo(config.EnforceGeofence)},
		{"Late buffer", fmt.Sprintf("%d minutes", config.LateBufferMinutes())},
		{"Manual time", yesNo(config.AttendanceSettings.AllowManualTime)},
		{"Max adjustment", fmt.Sprintf("%d minutes", config.AttendanceSettings.MaxTimeAdjustment)},
		{"Require approval", yesNo(config.AttendanceSettings.RequireApproval)},
		{"Last modified", config.LastModified},
		{"Modified by", config.LastModifiedBy},
	}
	if saved != nil {
		rows = append(rows, [2]string{"Saved location", formatCoordinates(*saved)})
	}
	for _, row := range rows {
		fmt.Fprintf(table, "%s\t%s\n", row[0], orPlaceholder(row[1]))
	}
	return table.Flush()
}

func renderGeofence(w io.Writer, styles Styles, config domain.Configuration, point domain.Coordinates) error {
	distance := config.DistanceKm(point)
	badge := styles.LocationBadge(domain.LocationRemote)
	if config.Contains(point) {
		badge = styles.LocationBadge(domain.LocationOffice)
	}
	_, err := fmt.Fprintf(w, "%s %.3f km from the office (allowed %s km)\n",
		badge, distance, strconv.FormatFloat(config.AllowedRadiusKm, 'f', -1, 64))
	return err
}

func renderDashboard(w io.Writer, styles Styles, summary domain.DashboardSummary) error {
	attendance := summary.AttendanceSummary

	fmt.Fprintln(w, styles.title.Render("Today "+attendance.Date))
	table := newTable(w)
	fmt.Fprintf(table, "Employees\t%d\n", attendance.TotalEmployees)
	fmt.Fprintf(table, "Present\t%d\t%.1f%%\n", attendance.PresentCount, attendance.PresentPercentage)
	fmt.Fprintf(table, "Late\t%d\t%.1f%%\n", attendance.LateCount, attendance.LatePercentage)
	fmt.Fprintf(table, "Absent\t%d\t%.1f%%\n", attendance.AbsentCount, attendance.AbsentPercentage)
	if err := table.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.title.Render("Recent activity"))
	if len(summary.RecentActivity) == 0 {
		fmt.Fprintln(w, styles.muted.Render("No recent activity"))
	} else {
		table = newTable(w)
		for _, activity := range summary.RecentActivity {
			name := activity.EmployeeName
			if name == "" {
				name = activity.Name
			}
			status := domain.AttendanceRecord{Status: domain.StatusPresent}
			if activity.IsLate {
				status.Status = domain.StatusLate
			}
			fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
				orPlaceholder(name),
				orPlaceholder(activity.Action),
				timefmt.ToDisplayTime(orPlaceholder(activity.Time)),
				styles.StatusBadge(status),
			)
		}
		if err := table.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.title.Render("This week"))
	table = newTable(w)
	for _, day := range summary.WeeklyOverview {
		label := day.DisplayDate
		if label == "" {
			label = day.Date
		}
		fmt.Fprintf(table, "%s\t%d/%d\n", label, day.Present, day.Total)
	}
	return table.Flush()
}
