package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"volunteer-match-server/internal/model/requestresponse"
	"volunteer-match-server/internal/ports"
)

type AnalyticsHandler struct {
	ports.AnalyticsService
}

func NewAnalyticsHandler(analyticsService ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService}
}

// GetSummary godoc
// @Summary Сводная аналитика
// @Description Возвращает агрегированные счётчики: пользователи по ролям, организации, вакансии и заявки по статусам. Результат кэшируется в Redis.
// @Tags Analytics
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.AnalyticsResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/analytics/summary [get]
// @Security BearerAuth
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := h.AnalyticsService.Summary(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.AnalyticsResponse{Data: summary}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
