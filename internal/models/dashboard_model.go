package models

// Pagination is the per-list paging state recomputed from every list-fetch
// response.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// MonthlyCount is one point of the monthly-applications series.
type MonthlyCount struct {
	Month string `json:"month"` // e.g. "2026-08"
	Count int    `json:"count"`
}

// DashboardStats aggregates the analytics shown on the dashboard shell.
type DashboardStats struct {
	StatusCounts        map[string]int `json:"statusCounts"`
	MonthlyApplications []MonthlyCount `json:"monthlyApplications,omitempty"`
	PendingTasks        int            `json:"pendingTasks"`
	UpcomingInterviews  int            `json:"upcomingInterviews"`
}
