package database

import (
	"fmt"
	"log"

	"taxprep/config"
	"taxprep/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes the store connection before the server starts
// accepting traffic. The dialect comes from config; production enforces TLS
// on the connection.
func ConnectDb() {
	db, err := gorm.Open(openDialector(), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(5) // small fixed pool; callers queue under burst load
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// openDialector builds the GORM dialector for the configured dialect
func openDialector() gorm.Dialector {
	cfg := config.AppConfig

	switch cfg.DBDialect {
	case "sqlite":
		return sqlite.Open(cfg.DBName)
	case "mysql":
		tls := "false"
		if !config.IsDevelopment() {
			tls = "true"
		}
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&tls=%s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, tls,
		)
		return mysql.Open(dsn)
	default: // postgres
		sslMode := "disable"
		if !config.IsDevelopment() {
			sslMode = "require"
		}
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode,
		)
		return postgres.Open(dsn)
	}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Dependent{},
		&models.LoginTracking{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
