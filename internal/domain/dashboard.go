package domain

type AttendanceSummary struct {
	Date              string
	TotalEmployees    int
	PresentCount      int
	LateCount         int
	AbsentCount       int
	PresentPercentage float64
	LatePercentage    float64
	AbsentPercentage  float64
}

type RecentActivity struct {
	EmployeeID   string
	Name         string
	EmployeeName string
	Action       string
	Time         string
	IsLate       bool
}

type WeeklyOverview struct {
	Date        string
	DisplayDate string
	Present     int
	Total       int
}

type DashboardSummary struct {
	AttendanceSummary AttendanceSummary
	RecentActivity    []RecentActivity
	WeeklyOverview    []WeeklyOverview
}
