package dashboardController

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"taxprep/database"
	"taxprep/middleware"
	"taxprep/models"
	"taxprep/utils"
)

// ExtractW2 runs the configured extractor over the stored W-2 document and
// replaces the user's income snapshot with the result.
func ExtractW2(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	if !user.W2Uploaded || user.W2FileName == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No W-2 form uploaded yet!", nil)
	}

	filePath := utils.FormPath(utils.W2FormKind, user.W2FileName)
	if _, err := os.Stat(filePath); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "W-2 file is missing from storage!", nil)
	}

	record, err := utils.ActiveExtractor.ExtractW2(user, filePath)
	if err != nil {
		log.Printf("W-2 extraction failed for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Document extraction failed, please retry later!", nil)
	}

	if err := user.SetCurrentW2(record); err != nil {
		log.Printf("Error encoding W-2 record for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store extracted data!", nil)
	}
	if user.FormCompletionStatus == models.FormNotStarted {
		user.FormCompletionStatus = models.FormInProgress
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "W-2 data extracted successfully.", record)
}

// GetW2Data returns the current W-2 extraction snapshot
func GetW2Data(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	record, ok := user.CurrentW2()
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No W-2 data found! Run extraction first.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "W-2 data.", record)
}

// UpdateW2Data merges the request fields over the stored W-2 record.
// Fields present in the body overwrite, absent fields keep their values.
func UpdateW2Data(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	record, ok := user.CurrentW2()
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No W-2 data found! Run extraction first.", nil)
	}

	if err := json.Unmarshal(c.Body(), record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	now := time.Now()
	record.LastModified = &now

	if err := user.SetCurrentW2(record); err != nil {
		log.Printf("Error encoding W-2 record for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store W-2 data!", nil)
	}
	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "W-2 data updated successfully.", record)
}
