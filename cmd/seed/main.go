package main

import (
	"context"
	"log"
	"time"

	"go-catalog-admin/internal/repository"
	"go-catalog-admin/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, replying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	defer database.Disconnect(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 3. Ensure indexes
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("❌ Failed to ensure indexes: %v", err)
	}

	// 4. Seed default categories
	categoryRepo := repository.NewCategoryRepo(db)
	if err := categoryRepo.SeedDefaults(ctx); err != nil {
		log.Fatalf("❌ Failed to seed categories: %v", err)
	}

	log.Println("✅ Success! Default categories are in place")
}
