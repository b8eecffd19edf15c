package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/pjunjae/safetycam/internal/api"
	"github.com/pjunjae/safetycam/internal/auth"
	"github.com/pjunjae/safetycam/internal/database"
	"github.com/pjunjae/safetycam/internal/metrics"
	"github.com/pjunjae/safetycam/internal/reports"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Database configuration
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var dbConfig database.Config
	dbConfig.Type = dbType

	if dbType == "postgres" {
		dbConfig.Host = os.Getenv("DB_HOST")
		if dbConfig.Host == "" {
			dbConfig.Host = "localhost"
		}

		dbPortStr := os.Getenv("DB_PORT")
		if dbPortStr == "" {
			dbPortStr = "5432"
		}
		dbPort, err := strconv.Atoi(dbPortStr)
		if err != nil {
			log.Fatal("Invalid DB_PORT:", err)
		}
		dbConfig.Port = dbPort

		dbConfig.User = os.Getenv("DB_USER")
		if dbConfig.User == "" {
			dbConfig.User = "safetycam"
		}

		dbConfig.Password = os.Getenv("DB_PASSWORD")
		if dbConfig.Password == "" {
			dbConfig.Password = "safetycam_dev"
		}

		dbConfig.Name = os.Getenv("DB_NAME")
		if dbConfig.Name == "" {
			dbConfig.Name = "safetycam"
		}
	} else {
		dbConfig.SQLitePath = os.Getenv("DB_PATH")
		if dbConfig.SQLitePath == "" {
			dbConfig.SQLitePath = "./safetycam.db"
		}
	}

	db, err := database.NewDB(dbConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}

	log.Printf("Running database migrations from %s", migrationsPath)
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	metrics.Register()

	app := &api.App{
		EventRepo:    database.NewEventRepository(db),
		FeedbackRepo: database.NewFeedbackRepository(db),
		CameraRepo:   database.NewCameraRepository(db),
		Reports:      reports.NewService(database.NewReportRepository(db)),
		Auth:         auth.NewService(database.NewUserRepository(db)),
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}
