package requestresponse

import "volunteer-match-server/internal/model"

// CreateApplicationRequest : заявка волонтёра на вакансию
type CreateApplicationRequest struct {
	Message string `json:"message" example:"Хочу помочь, есть свободные выходные"`
}

// DecideApplicationRequest : решение организации по заявке
type DecideApplicationRequest struct {
	Status string `json:"status" example:"accepted"`
}

// ApplicationResponse : успешный ответ с данными заявки
type ApplicationResponse struct {
	Data *model.Application `json:"data"`
}

// ListApplicationsResponse : успешный ответ
type ListApplicationsResponse struct {
	Data struct {
		Applications []model.Application `json:"applications"`
	} `json:"data"`
}
