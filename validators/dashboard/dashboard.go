package dashboardValidator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"taxprep/middleware"
	"taxprep/models"
)

// validate is the shared validator instance. Field names in error maps come
// from json tags so clients see the same names they sent.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// UpdateProfile validator middleware. Only whitelisted profile fields are
// accepted; everything else in the body is ignored.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FirstName    *string `json:"firstName"`
			LastName     *string `json:"lastName"`
			FilingStatus *string `json:"filingStatus"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.FirstName != nil && len(*reqData.FirstName) > 100 {
			errors["firstName"] = "First name is too long!"
		}
		if reqData.LastName != nil && len(*reqData.LastName) > 100 {
			errors["lastName"] = "Last name is too long!"
		}

		// Validate Filing Status against the supported enum
		if reqData.FilingStatus != nil && !models.ValidFilingStatuses[*reqData.FilingStatus] {
			errors["filingStatus"] = "Invalid filing status!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

// AddDependent validator middleware
func AddDependent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string `json:"name" validate:"required,max=200"`
			Relationship string `json:"relationship" validate:"omitempty,max=100"`
			DateOfBirth  string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
			SSN          string `json:"ssn" validate:"omitempty,max=20"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, e := range err.(validator.ValidationErrors) {
				switch e.Tag() {
				case "required":
					errors[e.Field()] = "This field is required!"
				case "datetime":
					errors[e.Field()] = "Must be a valid date in YYYY-MM-DD format!"
				case "max":
					errors[e.Field()] = "Value is too long!"
				default:
					errors[e.Field()] = "Invalid value!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDependent", reqData)
		return c.Next()
	}
}
