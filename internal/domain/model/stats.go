package model

type DashboardStats struct {
	TotalRequests  int            `json:"total_requests"`
	HighPriority   int            `json:"high_priority"`
	NormalPriority int            `json:"normal_priority"`
	Volunteers     int            `json:"volunteers"`
	ByProblemType  map[string]int `json:"by_problem_type"`
}
