package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/handler"
	"volunteer-match-server/internal/repository"
	"volunteer-match-server/internal/security"
	"volunteer-match-server/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Volunteer-match-server
// @version 1.0
// @description REST API платформы волонтёрских вакансий

// @host localhost:8080

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.S3AndRedis)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	// секрет обязателен, без него сервер не стартует
	jwtService, err := security.NewJWTService(&cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка конфигурации JWT: %v", err)
	}

	userService := service.NewUserService(userRepo, &cfg.Security)
	authService := service.NewAuthenticationService(jwtService, userRepo)
	organizationService := service.NewOrganizationService(organizationRepo, userRepo)
	volunteerService := service.NewVolunteerService(volunteerRepo, userRepo)
	opportunityService := service.NewOpportunityService(opportunityRepo, organizationRepo, cacheRepo)
	applicationService := service.NewApplicationService(applicationRepo, opportunityRepo, organizationRepo, userRepo, cacheRepo)
	uploadService := service.NewUploadService(uploadRepo, s3Service, time.Duration(cfg.TTL.S3AndRedis)*time.Second)
	analyticsService := service.NewAnalyticsService(analyticsRepo, cacheRepo)

	authHandler := handler.NewAuthenticationHandler(authService, jwtService)
	userHandler := handler.NewUserHandler(userService)
	organizationHandler := handler.NewOrganizationHandler(organizationService)
	volunteerHandler := handler.NewVolunteerHandler(volunteerService)
	opportunityHandler := handler.NewOpportunityHandler(opportunityService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	router.Use(config.DBMiddleware(db))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, jwtService, cfg)
	setupUserRoutes(router, userHandler, jwtService, cfg)
	setupOrganizationRoutes(router, organizationHandler, jwtService, cfg)
	setupVolunteerRoutes(router, volunteerHandler, jwtService, cfg)
	setupOpportunityRoutes(router, opportunityHandler, applicationHandler, jwtService, cfg)
	setupApplicationRoutes(router, applicationHandler, jwtService, cfg)
	setupUploadRoutes(router, uploadHandler, jwtService, cfg)
	setupAnalyticsRoutes(router, analyticsHandler, jwtService, cfg)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService, cfg.Admin.AdminToken))
			r.Get("/me", h.GetCurrentUser)
			r.Head("/me", h.GetCurrentUserHead)
		})
		r.Group(func(r chi.Router) {
			r.Post("/", h.Login)
			r.Post("/refresh", h.RefreshToken)
		})
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.RegisterUser)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService, cfg.Admin.AdminToken))

			r.Get("/users", h.ListUsers)

			r.Route("/users/{uuid}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Put("/", h.UpdateUser)
				r.Put("/password", h.UpdatePassword)
				r.Delete("/", h.DeleteUser)
			})
		})
	})
}

func setupOrganizationRoutes(r chi.Router, h *handler.OrganizationHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/organizations", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, cfg.Admin.AdminToken))
		r.Get("/", h.ListOrganizations)
		r.Post("/", h.CreateOrganization)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", h.GetOrganization)
			r.Put("/", h.UpdateOrganization)
			r.Delete("/", h.DeleteOrganization)
		})
	})
}

func setupVolunteerRoutes(r chi.Router, h *handler.VolunteerHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/volunteers", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, cfg.Admin.AdminToken))
		r.Post("/", h.CreateProfile)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", h.GetProfile)
			r.Put("/", h.UpdateProfile)
			r.Delete("/", h.DeleteProfile)
		})
	})
}

func setupOpportunityRoutes(r chi.Router, h *handler.OpportunityHandler, ah *handler.ApplicationHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/opportunities", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, cfg.Admin.AdminToken))
		r.Get("/", h.ListOpportunities)
		r.Post("/", h.CreateOpportunity)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", h.GetOpportunity)
			r.Put("/", h.UpdateOpportunity)
			r.Delete("/", h.DeleteOpportunity)

			r.Get("/applications", ah.ListForOpportunity)
			r.Post("/applications", ah.Apply)
		})
	})
}

func setupApplicationRoutes(r chi.Router, h *handler.ApplicationHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/applications", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, cfg.Admin.AdminToken))
		r.Get("/", h.ListMine)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Put("/decision", h.Decide)
			r.Delete("/", h.Withdraw)
		})
	})
}

func setupUploadRoutes(r chi.Router, h *handler.UploadHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/uploads", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, cfg.Admin.AdminToken))
		r.Get("/", h.ListUploads)
		r.Post("/", h.CreateUpload)

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/", h.GetUpload)
			r.Delete("/", h.DeleteUpload)
		})
	})
}

func setupAnalyticsRoutes(r chi.Router, h *handler.AnalyticsHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, cfg.Admin.AdminToken))
		r.Get("/summary", h.GetSummary)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
