package authController

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taxprep/config"
	"taxprep/database"
	"taxprep/middleware"
	"taxprep/models"
	"taxprep/utils"
)

// invalidCredentials is returned for unknown email and wrong password alike
// so responses never reveal whether an account exists.
const invalidCredentials = "Invalid email or password!"

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is already registered!", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.StorageErrorResponse(c, err)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		FirstName:            reqData.FirstName,
		LastName:             reqData.LastName,
		Email:                reqData.Email,
		Password:             string(hashedPassword),
		FormCompletionStatus: models.FormNotStarted,
	}

	// Create User
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.StorageErrorResponse(c, err)
	}

	name := newUser.FullName()
	if name == "" {
		name = newUser.Email
	}
	utils.SendWelcomeEmail(newUser.Email, name)

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, invalidCredentials, nil)
		}
		return middleware.StorageErrorResponse(c, err)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, invalidCredentials, nil)
	}

	// Update last login time
	now := time.Now()
	user.LastLogin = &now
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}
	userAgent := c.Get("User-Agent")

	// Capture login tracking details
	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: ip,
		Device:    userAgent,
		Timestamp: now,
	}
	if err := database.Database.Db.Create(&loginTracking).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}

	utils.SendLoginNotificationEmail(user.Email, user.FullName(), ip, userAgent, now.Format(time.RFC1123))

	// Generate JWT token
	token, err := middleware.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func Profile(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		return middleware.StorageErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User profile.", user)
}

func LoginHistoryList(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Retrieve validated request data
	reqData, ok := c.Locals("validatedLoginHistory").(*struct {
		Page  *int `query:"page"`
		Limit *int `query:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	var loginHistory []models.LoginTracking
	var total int64

	// Fetch login history with pagination, newest first
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("timestamp desc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&loginHistory).
		Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	// Count total records
	database.Database.Db.Model(&models.LoginTracking{}).Where("user_id = ? AND is_deleted = ?", userId, false).Count(&total)

	response := map[string]interface{}{
		"loginHistory": loginHistory,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login History List.", response)
}
