package hrapi

import (
	"fmt"

	"github.com/Amund211/rollcall/internal/domain"
)

type attendanceSummaryWire struct {
	Date              string  `json:"date"`
	TotalEmployees    int     `json:"total_employees"`
	PresentCount      int     `json:"present_count"`
	LateCount         int     `json:"late_count"`
	AbsentCount       int     `json:"absent_count"`
	PresentPercentage float64 `json:"present_percentage"`
	LatePercentage    float64 `json:"late_percentage"`
	AbsentPercentage  float64 `json:"absent_percentage"`
}

type recentActivityWire struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	EmployeeName string `json:"employee_name"`
	Action       string `json:"action"`
	Time         string `json:"time"`
	IsLate       bool   `json:"is_late"`
}

type weeklyOverviewWire struct {
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
	Present     int    `json:"present"`
	Total       int    `json:"total"`
}

type dashboardWire struct {
	AttendanceSummary attendanceSummaryWire `json:"attendance_summary"`
	RecentActivity    []recentActivityWire  `json:"recent_activity"`
	WeeklyOverview    []weeklyOverviewWire  `json:"weekly_overview"`
}

func DecodeDashboard(body []byte) (domain.DashboardSummary, error) {
	var wire dashboardWire
	if err := decodeData(body, &wire); err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("failed to decode dashboard: %w", err)
	}

	summary := domain.DashboardSummary{
		AttendanceSummary: domain.AttendanceSummary(wire.AttendanceSummary),
		RecentActivity:    make([]domain.RecentActivity, 0, len(wire.RecentActivity)),
		WeeklyOverview:    make([]domain.WeeklyOverview, 0, len(wire.WeeklyOverview)),
	}
	for _, activity := range wire.RecentActivity {
		summary.RecentActivity = append(summary.RecentActivity, domain.RecentActivity(activity))
	}
	for _, day := range wire.WeeklyOverview {
		summary.WeeklyOverview = append(summary.WeeklyOverview, domain.WeeklyOverview(day))
	}
	return summary, nil
}
