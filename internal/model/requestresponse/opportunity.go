package requestresponse

import (
	"time"

	"volunteer-match-server/internal/model"
)

// CreateOpportunityRequest : тело запроса на создание вакансии
type CreateOpportunityRequest struct {
	Title       string    `json:"title" example:"Субботник в парке"`
	Description string    `json:"description" example:"Уборка территории, инвентарь выдаём"`
	Category    string    `json:"category" example:"экология"`
	City        string    `json:"city" example:"Москва"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity" example:"20"`
}

// UpdateOpportunityRequest : тело запроса на обновление вакансии
type UpdateOpportunityRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	Status      string    `json:"status" example:"open"`
}

// OpportunityResponse : успешный ответ с данными вакансии
type OpportunityResponse struct {
	Data *model.Opportunity `json:"data"`
}

// ListOpportunitiesResponse : успешный ответ
type ListOpportunitiesResponse struct {
	Data struct {
		Opportunities []model.Opportunity `json:"opportunities"`
		NextCursor    string              `json:"next_cursor,omitempty"`
	} `json:"data"`
}
