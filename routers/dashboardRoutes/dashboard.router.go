package dashboardRoutes

import (
	dashboardControllers "taxprep/controllers/dashboard"
	"taxprep/middleware"
	dashboardValidators "taxprep/validators/dashboard"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard")

	dashboardGroup.Get("/me", middleware.JWTMiddleware, dashboardControllers.Me)
	dashboardGroup.Put("/me", dashboardValidators.UpdateProfile(), middleware.JWTMiddleware, dashboardControllers.UpdateMe)

	dashboardGroup.Get("/dependents", middleware.JWTMiddleware, dashboardControllers.ListDependents)
	dashboardGroup.Post("/dependents", dashboardValidators.AddDependent(), middleware.JWTMiddleware, dashboardControllers.AddDependent)
	dashboardGroup.Delete("/dependents/:id", middleware.JWTMiddleware, dashboardControllers.RemoveDependent)

	dashboardGroup.Post("/upload-w9", middleware.JWTMiddleware, dashboardControllers.UploadW9)
	dashboardGroup.Post("/upload-w2", middleware.JWTMiddleware, dashboardControllers.UploadW2)

	dashboardGroup.Post("/extract-w2", middleware.JWTMiddleware, dashboardControllers.ExtractW2)
	dashboardGroup.Get("/w2-data", middleware.JWTMiddleware, dashboardControllers.GetW2Data)
	dashboardGroup.Put("/w2-data", middleware.JWTMiddleware, dashboardControllers.UpdateW2Data)

	dashboardGroup.Post("/generate-1098", middleware.JWTMiddleware, dashboardControllers.Generate1098)
	dashboardGroup.Get("/1098-data", middleware.JWTMiddleware, dashboardControllers.Get1098Data)
	dashboardGroup.Put("/1098-data", middleware.JWTMiddleware, dashboardControllers.Update1098Data)
	dashboardGroup.Get("/download-1098", middleware.JWTMiddleware, dashboardControllers.Download1098)
}
