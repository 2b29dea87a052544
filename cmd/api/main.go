package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jobfair/internal/config"
	"jobfair/internal/database"
	"jobfair/internal/middleware"
	"jobfair/internal/modules/auth"
	"jobfair/internal/modules/booking"
	"jobfair/internal/modules/company"
	jwtsvc "jobfair/internal/pkg/jwt"
	"jobfair/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	companyService := company.NewService(companyRepo)
	companyHandler := company.NewHandler(companyService)

	bookingService := booking.NewService(bookingRepo, companyRepo, cfg.Booking)
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.RequestID(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		companyHandler.RegisterPublicRoutes(v1)

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)

			// company writes are admin-only
			adminOnly := protected.Group("/")
			adminOnly.Use(middleware.AdminOnly())
			companyHandler.RegisterAdminRoutes(adminOnly)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
