package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taxprep/config"
	"taxprep/database"
	"taxprep/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// TokenValidity is how long an issued session token stays usable.
const TokenValidity = 7 * 24 * time.Hour

// GenerateJWT generates a session token for the user
func GenerateJWT(userID uint, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(TokenValidity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware is a middleware to check for valid JWT token in the request.
// It distinguishes missing, malformed, expired and invalid tokens, then
// re-loads the user so tokens for deleted accounts stop working immediately.
func JWTMiddleware(c *fiber.Ctx) error {
	// Get the token from the Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing authorization token!", nil)
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Malformed authorization header!", nil)
	}

	// Extract the token part
	tokenString := strings.TrimSpace(authHeader[len("Bearer "):])
	if tokenString == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Malformed authorization header!", nil)
	}

	// Parse and validate the token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Check if the token method is valid
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		jwtSecret := []byte(config.AppConfig.JWTKey)
		return jwtSecret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Malformed token!", nil)
		case errors.Is(err, jwt.ErrTokenExpired):
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Token has expired!", nil)
		default:
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token!", nil)
		}
	}

	if !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token!", nil)
	}

	// Extract user ID from the token claims
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload!", nil)
	}

	userID, ok := claims["userId"].(float64) // JWT numeric claims decode as float64
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload!", nil)
	}

	// Re-load the user so a token issued before account deletion is rejected
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", uint(userID), false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Token no longer valid!", nil)
		}
		return StorageErrorResponse(c, err)
	}

	c.Locals("userId", user.ID)
	c.Locals("email", user.Email)
	c.Locals("firstName", user.FirstName)
	c.Locals("lastName", user.LastName)

	// If valid, continue to the next handler
	return c.Next()
}
