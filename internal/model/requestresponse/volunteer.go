package requestresponse

import "volunteer-match-server/internal/model"

// CreateVolunteerProfileRequest : тело запроса на создание профиля волонтёра
type CreateVolunteerProfileRequest struct {
	FullName string `json:"full_name" example:"Иван Петров"`
	Bio      string `json:"bio" example:"Помогаю приютам для животных"`
	Skills   string `json:"skills" example:"первая помощь, вождение"`
	City     string `json:"city" example:"Санкт-Петербург"`
}

// UpdateVolunteerProfileRequest : тело запроса на обновление профиля
type UpdateVolunteerProfileRequest struct {
	FullName string `json:"full_name"`
	Bio      string `json:"bio"`
	Skills   string `json:"skills"`
	City     string `json:"city"`
}

// VolunteerProfileResponse : успешный ответ с данными профиля
type VolunteerProfileResponse struct {
	Data *model.VolunteerProfile `json:"data"`
}
