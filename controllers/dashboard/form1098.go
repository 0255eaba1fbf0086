package dashboardController

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"taxprep/database"
	"taxprep/middleware"
	"taxprep/models"
	"taxprep/utils"
)

// Generate1098 derives a fresh 1098 estimate from the current W-2 snapshot
// and replaces the user's deductions snapshot with it.
func Generate1098(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	w2, ok := user.CurrentW2()
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No W-2 data found! Extract your W-2 before generating a 1098.", nil)
	}

	form := utils.BuildForm1098(user, w2)

	if err := user.SetCurrent1098(form); err != nil {
		log.Printf("Error encoding 1098 record for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store generated form!", nil)
	}
	user.FormCompletionStatus = models.FormCompleted

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	utils.Send1098ReadyEmail(user.Email, user.FullName(), form.FormYear)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Form 1098 generated successfully.", form)
}

// Get1098Data returns the current 1098 record
func Get1098Data(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	form, ok := user.Current1098()
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No 1098 data found! Generate the form first.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Form 1098 data.", form)
}

// Update1098Data merges the request fields over the stored 1098 record
func Update1098Data(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	form, ok := user.Current1098()
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No 1098 data found! Generate the form first.", nil)
	}

	if err := json.Unmarshal(c.Body(), form); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	now := time.Now()
	form.LastModified = &now

	if err := user.SetCurrent1098(form); err != nil {
		log.Printf("Error encoding 1098 record for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store 1098 data!", nil)
	}
	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.StorageErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Form 1098 updated successfully.", form)
}

// Download1098 renders the stored 1098 record as a PDF attachment
func Download1098(c *fiber.Ctx) error {
	user, errResp := loadUser(c)
	if user == nil {
		return errResp
	}

	form, ok := user.Current1098()
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No 1098 data found! Generate the form first.", nil)
	}

	pdfBytes, err := utils.RenderForm1098PDF(form)
	if err != nil {
		log.Printf("Error rendering 1098 PDF for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to render the 1098 PDF!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="form1098-%d.pdf"`, form.FormYear))
	return c.Status(fiber.StatusOK).Send(pdfBytes)
}
