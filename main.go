package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"taxprep/config"
	"taxprep/database"
	authRoutes "taxprep/routers/authRoutes"
	dashboardRoutes "taxprep/routers/dashboardRoutes"
	"taxprep/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := utils.EnsureUploadDirs(); err != nil {
		log.Fatalf("Failed to prepare upload directories: %v", err)
	}
	utils.InitExtractor()

	// Body limit sits above the handler-level 5 MiB file cap so oversized
	// uploads get the JSON error instead of a bare 413.
	app := fiber.New(fiber.Config{
		BodyLimit: 8 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	dashboardRoutes.SetupDashboardRoutes(app)

	if !config.AppConfig.CleanupDisabled {
		utils.InitializeCleanupScheduler()
	}

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
