package main

import (
	"flag"
	"log"

	"github.com/itsmrajesh/quizgen-backend/internal/config"
	"github.com/itsmrajesh/quizgen-backend/internal/database"
)

func main() {
	sourceDir := flag.String("source", "database/migrations", "migrations directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DB.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	if err := database.RunMigrations(cfg.GetDSN(), *sourceDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")
}
