package requestresponse

import "volunteer-match-server/internal/model"

// AnalyticsResponse : агрегированные счётчики
type AnalyticsResponse struct {
	Data *model.AnalyticsSummary `json:"data"`
}
