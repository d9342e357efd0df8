package routes

import (
	"github.com/gofiber/fiber/v2"

	"foodbridge-backend/domain"
	"foodbridge-backend/internal/api/handlers"
	"foodbridge-backend/internal/middleware"
	"foodbridge-backend/pkg/jwt"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	FoodHandler         handlers.FoodHandler
	PickupHandler       handlers.PickupHandler
	NotificationHandler handlers.NotificationHandler
	VerificationHandler handlers.VerificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.FoodItems()
	c.PickupRequests()
	c.Notifications()
	c.Verification()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
		user.Get("", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.RoleMiddleware(domain.RoleAdmin), c.UserHandler.GetUsers)
	}
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))
	{
		foodItems.Post("", c.Middleware.RoleMiddleware(domain.RoleDonor), c.FoodHandler.CreateFoodItem)
		foodItems.Get("", c.FoodHandler.GetFoodItems)
		foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
		foodItems.Put("/:id", c.Middleware.RoleMiddleware(domain.RoleDonor), c.FoodHandler.UpdateFoodItem)
		foodItems.Post("/:id/image", c.Middleware.RoleMiddleware(domain.RoleDonor), c.FoodHandler.UploadFoodImage)
	}
}

func (c *Config) PickupRequests() {
	requests := c.App.Group("/api/v1/pickup-requests", c.Middleware.AuthMiddleware(c.JWTService))
	{
		requests.Post("", c.Middleware.RoleMiddleware(domain.RoleBeneficiary), c.PickupHandler.CreateRequest)
		requests.Get("", c.PickupHandler.GetRequests)
		requests.Patch("/:id", c.PickupHandler.UpdateRequest)
	}
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))
	{
		notifications.Get("", c.NotificationHandler.GetNotifications)
		notifications.Patch("/:id/read", c.NotificationHandler.MarkAsRead)
	}
}

func (c *Config) Verification() {
	verification := c.App.Group("/api/v1/verification", c.Middleware.AuthMiddleware(c.JWTService))
	{
		verification.Post("/requests", c.VerificationHandler.SubmitRequest)
		verification.Get("/requests", c.Middleware.RoleMiddleware(domain.RoleAdmin), c.VerificationHandler.GetRequests)
		verification.Patch("/requests/:id", c.Middleware.RoleMiddleware(domain.RoleAdmin), c.VerificationHandler.ReviewRequest)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
