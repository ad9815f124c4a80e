package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-catalog-admin/internal/config"
	"go-catalog-admin/internal/handler"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/internal/service"
	"go-catalog-admin/internal/ws"
	"go-catalog-admin/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Printf("Warning: Failed to ensure indexes: %v", err)
	}

	// 3. Seed default categories
	categoryRepo := repository.NewCategoryRepo(db)
	if err := categoryRepo.SeedDefaults(ctx); err != nil {
		log.Printf("Warning: Failed to seed categories: %v", err)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)

	catalogService := service.NewCatalogService(productRepo, categoryRepo, wsHub, cfg)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(catalogService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Catalog Admin API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	// Uploaded images are served straight from disk
	app.Static("/uploads", cfg.UploadDir)

	// 7. Routes
	app.Get("/products", catalogHandler.GetProducts)
	app.Get("/products/:id", catalogHandler.GetProduct)
	app.Post("/products", catalogHandler.CreateProduct)

	app.Get("/categories", categoryHandler.GetCategories)
	app.Post("/categories", categoryHandler.CreateCategory)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Add(c)
		defer wsHub.Remove(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	database.Disconnect(db)

	log.Println("Server exited")
}
