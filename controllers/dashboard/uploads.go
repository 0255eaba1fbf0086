package dashboardController

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"taxprep/database"
	"taxprep/middleware"
	"taxprep/utils"
)

// UploadW9 stores a W-9 form for the authenticated user
func UploadW9(c *fiber.Ctx) error {
	return handleFormUpload(c, utils.W9FormKind, "w9Form")
}

// UploadW2 stores a W-2 form for the authenticated user
func UploadW2(c *fiber.Ctx) error {
	return handleFormUpload(c, utils.W2FormKind, "w2Form")
}

// handleFormUpload validates and stores one tax form upload, then repoints
// the user's document fields at the new file. The previous file stays on
// disk until the cleanup sweep collects it.
func handleFormUpload(c *fiber.Ctx, kind, field string) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	file, err := c.FormFile(field)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	if err := utils.ValidateTaxForm(file); err != nil {
		switch {
		case errors.Is(err, utils.ErrNoFile):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
		case errors.Is(err, utils.ErrFileTooLarge):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File exceeds the 5 MB size limit!", nil)
		case errors.Is(err, utils.ErrUnsupportedFileType):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unsupported file type! Allowed: jpeg, jpg, png, pdf, doc, docx.", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid file upload!", nil)
		}
	}

	fileName, err := utils.SaveTaxForm(file, kind, user.ID)
	if err != nil {
		log.Printf("Error storing %s form for user %d: %v", kind, user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store the uploaded file!", nil)
	}

	now := time.Now()
	switch kind {
	case utils.W9FormKind:
		user.W9Uploaded = true
		user.W9UploadDate = &now
		user.W9FileName = fileName
	case utils.W2FormKind:
		user.W2Uploaded = true
		user.W2UploadDate = &now
		user.W2FileName = fileName
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	message := fmt.Sprintf("%s form uploaded successfully.", formLabel(kind))
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"fileName":   fileName,
		"uploadDate": now,
	})
}

func formLabel(kind string) string {
	switch kind {
	case utils.W9FormKind:
		return "W-9"
	case utils.W2FormKind:
		return "W-2"
	}
	return kind
}
