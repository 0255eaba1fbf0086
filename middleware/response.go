package middleware

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"

	"taxprep/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}

// StorageErrorResponse maps store failures to a response: transient
// connection problems become 503 so clients retry, everything else is a 500.
// Error detail is only exposed in development mode.
func StorageErrorResponse(c *fiber.Ctx, err error) error {
	log.Printf("Storage error on %s %s: %v", c.Method(), c.Path(), err)

	if isTransientStorageError(err) {
		return JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service temporarily unavailable, please retry!", nil)
	}

	message := "Something went wrong!"
	if config.IsDevelopment() {
		message = err.Error()
	}
	return JsonResponse(c, fiber.StatusInternalServerError, false, message, nil)
}

// isTransientStorageError reports whether err looks like a connection-level
// failure (pool exhausted, connection dropped, store not reachable) rather
// than a query bug.
func isTransientStorageError(err error) bool {
	return errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, gorm.ErrInvalidDB)
}
