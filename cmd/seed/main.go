package main

import (
	"context"
	"log"
	"time"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/repository"
	"volunteer-match-server/internal/security"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Наполняет базу демонстрационными данными: волонтёр, организация,
// открытая вакансия и заявка в статусе pending.
// Запуск: go run ./cmd/seed
func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	volunteerHash, err := security.HashPassword("Demo123!")
	if err != nil {
		log.Fatalf("Ошибка хэширования пароля: %v", err)
	}

	volunteer := &model.User{
		UUID:         uuid.New().String(),
		Email:        "volunteer@example.com",
		PasswordHash: volunteerHash,
		Role:         model.RoleVolunteer,
	}
	if _, err := userRepo.CreateUser(ctx, db, volunteer); err != nil {
		log.Fatalf("Ошибка создания волонтёра: %v", err)
	}

	organizationHash, err := security.HashPassword("Demo123!")
	if err != nil {
		log.Fatalf("Ошибка хэширования пароля: %v", err)
	}

	owner := &model.User{
		UUID:         uuid.New().String(),
		Email:        "organization@example.com",
		PasswordHash: organizationHash,
		Role:         model.RoleOrganization,
	}
	if _, err := userRepo.CreateUser(ctx, db, owner); err != nil {
		log.Fatalf("Ошибка создания организатора: %v", err)
	}

	profile := &model.VolunteerProfile{
		UUID:     uuid.New().String(),
		UserUUID: volunteer.UUID,
		FullName: "Иван Петров",
		Bio:      "Помогаю приютам для животных",
		Skills:   "первая помощь, вождение",
		City:     "Москва",
	}
	if err := volunteerRepo.Create(ctx, db, profile); err != nil {
		log.Fatalf("Ошибка создания профиля волонтёра: %v", err)
	}

	organization := &model.Organization{
		UUID:        uuid.New().String(),
		OwnerUUID:   owner.UUID,
		Name:        "Чистый город",
		Description: "Экологические субботники",
		Website:     "https://example.org",
		City:        "Москва",
	}
	if err := organizationRepo.Create(ctx, db, organization); err != nil {
		log.Fatalf("Ошибка создания организации: %v", err)
	}

	opportunity := &model.Opportunity{
		UUID:             uuid.New().String(),
		OrganizationUUID: organization.UUID,
		Title:            "Субботник в парке",
		Description:      "Уборка территории, инвентарь выдаём",
		Category:         "экология",
		City:             "Москва",
		StartsAt:         time.Now().Add(7 * 24 * time.Hour),
		EndsAt:           time.Now().Add(7*24*time.Hour + 4*time.Hour),
		Capacity:         20,
		Status:           model.OpportunityStatusOpen,
	}
	if err := opportunityRepo.Create(ctx, db, opportunity); err != nil {
		log.Fatalf("Ошибка создания вакансии: %v", err)
	}

	application := &model.Application{
		UUID:            uuid.New().String(),
		OpportunityUUID: opportunity.UUID,
		VolunteerUUID:   volunteer.UUID,
		Message:         "Хочу помочь, есть свободные выходные",
		Status:          model.ApplicationStatusPending,
	}
	if err := applicationRepo.Create(ctx, db, application); err != nil {
		log.Fatalf("Ошибка создания заявки: %v", err)
	}

	log.Println("Демо-данные успешно созданы")
	log.Printf("волонтёр: volunteer@example.com / Demo123! (uuid %s)", volunteer.UUID)
	log.Printf("организатор: organization@example.com / Demo123! (uuid %s)", owner.UUID)
	log.Printf("вакансия: %s (uuid %s)", opportunity.Title, opportunity.UUID)
}
