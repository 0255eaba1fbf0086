package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	Environment string // "development" enables verbose error detail
	JWTKey      string
	SaltRound   int

	DBDialect  string // postgres, mysql or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	UploadDir string // base directory for w9-forms/ and w2-forms/

	ExtractApiURL string // optional remote W-2 extraction service

	SendgridApiKey string
	EmailSender    string

	CleanupDisabled bool // skips the daily orphaned-upload sweep
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTKey:      getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound:   getEnvInt("SALT_ROUND", 12),

		DBDialect:  getEnv("DB_DIALECT", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "taxprep"),

		UploadDir: getEnv("UPLOAD_DIR", "."),

		ExtractApiURL: getEnv("EXTRACT_API_URL", ""),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@taxprep.local"),

		CleanupDisabled: getEnvBool("CLEANUP_DISABLED", false),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SaltRound < 12 {
		log.Printf("Warning: SALT_ROUND=%d is below the minimum of 12, using 12.", AppConfig.SaltRound)
		AppConfig.SaltRound = 12
	}
}

// IsDevelopment reports whether verbose error detail should be exposed
func IsDevelopment() bool {
	return AppConfig != nil && AppConfig.Environment == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a boolean or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
