package dashboardController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"taxprep/database"
	"taxprep/middleware"
	"taxprep/models"
)

// loadUser fetches the authenticated user's live row. Every dashboard
// handler goes through it so soft-deleted accounts read as missing.
func loadUser(c *fiber.Ctx) (*models.User, error) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		return nil, middleware.StorageErrorResponse(c, err)
	}
	return &user, nil
}

// Me returns the authenticated user's profile
func Me(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile details.", user)
}

// UpdateMe applies a partial profile update. Only whitelisted fields move;
// absent fields keep their stored values.
func UpdateMe(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedProfile").(*struct {
		FirstName    *string `json:"firstName"`
		LastName     *string `json:"lastName"`
		FilingStatus *string `json:"filingStatus"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.FirstName != nil {
		user.FirstName = *reqData.FirstName
	}
	if reqData.LastName != nil {
		user.LastName = *reqData.LastName
	}
	if reqData.FilingStatus != nil {
		user.FilingStatus = *reqData.FilingStatus
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", user)
}
