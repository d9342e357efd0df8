package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"foodbridge-backend/internal/api/handlers"
	"foodbridge-backend/internal/api/routes"
	"foodbridge-backend/internal/middleware"
	"foodbridge-backend/internal/utils"
	"foodbridge-backend/internal/utils/storage"
	"foodbridge-backend/pkg/food"
	"foodbridge-backend/pkg/jwt"
	"foodbridge-backend/pkg/notification"
	"foodbridge-backend/pkg/pickup"
	"foodbridge-backend/pkg/user"
	"foodbridge-backend/pkg/verification"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	pickupRepository := pickup.NewPickupRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	verificationRepository := verification.NewVerificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	notificationService := notification.NewNotificationService(notificationRepository, userRepository)
	foodService := food.NewFoodService(foodRepository, notificationService, s3)
	pickupService := pickup.NewPickupService(pickupRepository, userRepository)
	verificationService := verification.NewVerificationService(verificationRepository, userRepository, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, userService, validator)
	pickupHandler := handlers.NewPickupHandler(pickupService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	verificationHandler := handlers.NewVerificationHandler(verificationService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		FoodHandler:         foodHandler,
		PickupHandler:       pickupHandler,
		NotificationHandler: notificationHandler,
		VerificationHandler: verificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
