package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"campusbook/internal/config"
	"campusbook/internal/database"
	"campusbook/internal/middleware"
	"campusbook/internal/modules/booking"
	"campusbook/internal/modules/catalog"
	"campusbook/internal/modules/notify"
	jwtsvc "campusbook/internal/pkg/jwt"
	"campusbook/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	resourceRepo := repository.NewResourceRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notify.NewHub()
	defer hub.Close()
	notifier := notify.NewService(hub)
	notifyHandler := notify.NewHandler(hub, j)

	catalogService := catalog.NewService(resourceRepo, slotRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, resourceRepo, slotRepo, notifier, booking.WindowConfig{
		MinLeadDays:   cfg.MinLeadDays,
		MaxWindowDays: cfg.MaxWindowDays,
	})
	bookingHandler := booking.NewHandler(bookingService)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	notifyHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public catalog
		catalogHandler.RegisterRoutes(v1)

		// booking endpoints need a session
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				bookingHandler.RegisterAdminRoutes(admin)
				catalogHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	log.Printf("campusbook API listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
