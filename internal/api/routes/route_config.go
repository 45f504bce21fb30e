package routes

import (
	"billora-backend/internal/api/handlers"
	"billora-backend/internal/middleware"
	"billora-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App          *fiber.App
	AIHandler    handlers.AIHandler
	QRHandler    handlers.QRHandler
	EmailHandler handlers.EmailHandler
	Middleware   middleware.Middleware
	JWTService   jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.QR()
	c.AI()
	c.Email()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) QR() {
	qr := c.App.Group("/qr")
	{
		qr.Get("/resolve", c.QRHandler.Resolve)
		qr.Post("/generate", c.QRHandler.Generate)
	}
}

func (c *Config) AI() {
	c.App.Post("/suggestTags", c.AIHandler.SuggestTags)
	c.App.Post("/triggerAnalyzeInvoice", c.Middleware.AuthMiddleware(c.JWTService), c.AIHandler.TriggerAnalyzeInvoice)
	c.App.Post("/events/invoice-created", c.Middleware.RequireAuthorizationHeader(), c.AIHandler.InvoiceCreated)
}

func (c *Config) Email() {
	c.App.Post("/sendInvoiceEmail", c.Middleware.AuthMiddleware(c.JWTService), c.EmailHandler.SendInvoiceEmail)
	c.App.Post("/sendInvoiceEmailHttp", c.Middleware.RequireAuthorizationHeader(), c.EmailHandler.SendInvoiceEmailHTTP)
}
