package model

// AnalyticsSummary — агрегированные счётчики по всей системе
type AnalyticsSummary struct {
	UsersByRole          map[string]int `json:"users_by_role"`
	Organizations        int            `json:"organizations"`
	OpportunitiesByState map[string]int `json:"opportunities_by_status"`
	ApplicationsByState  map[string]int `json:"applications_by_status"`
}
