package dashboardController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"taxprep/database"
	"taxprep/middleware"
	"taxprep/models"
)

// ListDependents returns the user's dependents in insertion order
func ListDependents(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	var dependents []models.Dependent
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Order("id asc").
		Find(&dependents).Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dependent list.", dependents)
}

func AddDependent(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedDependent").(*struct {
		Name         string `json:"name" validate:"required,max=200"`
		Relationship string `json:"relationship" validate:"omitempty,max=100"`
		DateOfBirth  string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
		SSN          string `json:"ssn" validate:"omitempty,max=20"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	dependent := models.Dependent{
		UserID:       user.ID,
		Name:         reqData.Name,
		Relationship: reqData.Relationship,
		DateOfBirth:  reqData.DateOfBirth,
		SSN:          reqData.SSN,
	}

	if err := database.Database.Db.Create(&dependent).Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Dependent added successfully.", dependent)
}

// RemoveDependent soft-deletes one of the user's own dependents. A dependent
// belonging to another user reads as missing, never as forbidden.
func RemoveDependent(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	dependentId := c.Params("id")

	var dependent models.Dependent
	err := database.Database.Db.
		Where("id = ? AND user_id = ? AND is_deleted = ?", dependentId, user.ID, false).
		First(&dependent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Dependent not found!", nil)
		}
		return middleware.StorageErrorResponse(c, err)
	}

	dependent.IsDeleted = true
	if err := database.Database.Db.Save(&dependent).Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dependent removed successfully.", nil)
}
