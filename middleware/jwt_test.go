package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taxprep/config"
	"taxprep/database"
	"taxprep/models"
)

func setupAuthTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", Environment: "development"}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId":    c.Locals("userId"),
			"email":     c.Locals("email"),
			"firstName": c.Locals("firstName"),
		})
	})
	return app, db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{FirstName: "Test", LastName: "User", Email: "jwt@example.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestJWTMiddlewareMissingToken(t *testing.T) {
	app, _ := setupAuthTest(t)

	resp, body := doProtected(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing authorization token!", body["message"])
}

func TestJWTMiddlewareMalformedHeader(t *testing.T) {
	app, db := setupAuthTest(t)
	user := createTestUser(t, db)
	token, err := GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)

	// Valid token but no Bearer prefix
	resp, body := doProtected(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Malformed authorization header!", body["message"])
}

func TestJWTMiddlewareGarbageToken(t *testing.T) {
	app, _ := setupAuthTest(t)

	resp, body := doProtected(t, app, "Bearer not.a.token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Malformed token!", body["message"])
}

func TestJWTMiddlewareExpiredToken(t *testing.T) {
	app, db := setupAuthTest(t)
	user := createTestUser(t, db)

	claims := jwt.MapClaims{
		"userId": float64(user.ID),
		"email":  user.Email,
		"iat":    time.Now().Add(-2 * time.Hour).Unix(),
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)

	resp, body := doProtected(t, app, "Bearer "+expired)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token has expired!", body["message"])
}

func TestJWTMiddlewareWrongSignature(t *testing.T) {
	app, db := setupAuthTest(t)
	user := createTestUser(t, db)

	claims := jwt.MapClaims{
		"userId": float64(user.ID),
		"email":  user.Email,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	resp, body := doProtected(t, app, "Bearer "+forged)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token!", body["message"])
}

func TestJWTMiddlewareStaleUser(t *testing.T) {
	app, db := setupAuthTest(t)
	user := createTestUser(t, db)
	token, err := GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("is_deleted", true).Error)

	resp, body := doProtected(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token no longer valid!", body["message"])
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	app, db := setupAuthTest(t)
	user := createTestUser(t, db)
	token, err := GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)

	resp, body := doProtected(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(user.ID), data["userId"])
	assert.Equal(t, "jwt@example.com", data["email"])
	assert.Equal(t, "Test", data["firstName"])
}

func TestGenerateJWTClaims(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	tokenString, err := GenerateJWT(12, "claims@example.com")
	require.NoError(t, err)

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(12), claims["userId"])
	assert.Equal(t, "claims@example.com", claims["email"])

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(TokenValidity), exp, time.Minute)
}
