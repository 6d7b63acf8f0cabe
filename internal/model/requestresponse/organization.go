package requestresponse

import "volunteer-match-server/internal/model"

// CreateOrganizationRequest : тело запроса на создание организации
type CreateOrganizationRequest struct {
	Name        string `json:"name" example:"Чистый город"`
	Description string `json:"description" example:"Экологические субботники"`
	Website     string `json:"website" example:"https://example.org"`
	City        string `json:"city" example:"Москва"`
}

// UpdateOrganizationRequest : тело запроса на обновление организации
type UpdateOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	City        string `json:"city"`
}

// OrganizationResponse : успешный ответ с данными организации
type OrganizationResponse struct {
	Data *model.Organization `json:"data"`
}

// ListOrganizationsResponse : успешный ответ
type ListOrganizationsResponse struct {
	Data struct {
		Organizations []*model.Organization `json:"organizations"`
		NextCursor    string                `json:"next_cursor,omitempty"`
	} `json:"data"`
}
