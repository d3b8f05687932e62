package FiberConfig

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"Sparkle/Controllers"
	"Sparkle/CronJobs"
	"Sparkle/Generation"
	"Sparkle/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, orchestrator *Generation.Orchestrator, scheduler *CronJobs.SchedulerService) {
	// Initialize handlers
	locationController := Controllers.NewLocationController(db)
	templateController := Controllers.NewTemplateController(db)
	planningController := Controllers.NewPlanningController(db)
	taskController := Controllers.NewTaskController(db)
	exportController := Controllers.NewExportController(db)
	organizationController := Controllers.NewOrganizationController(db)
	adminController := Controllers.NewAdminController(orchestrator, scheduler)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth
	app.Post("/api/Login", Controllers.Login)
	app.Use("/api/Logout", Controllers.Logout)
	app.Get("/api/validate-token", Controllers.ValidateToken)
	app.Use("/api/User", middleware.Verify(1), Controllers.User)
	app.Post("/api/RegisterUser", middleware.Verify(3), Controllers.RegisterUser)
	app.Get("/api/FetchUsers", middleware.Verify(3), Controllers.FetchUsers)

	api := app.Group("/api")

	// Organization routes (super admin)
	organizations := api.Group("/organizations", middleware.Verify(4))
	organizations.Get("/", organizationController.GetOrganizations)
	organizations.Post("/", organizationController.CreateOrganization)
	organizations.Put("/:id", organizationController.UpdateOrganization)

	// Location routes
	locations := api.Group("/locations", middleware.Verify(1))
	locations.Get("/", locationController.GetLocations)
	locations.Get("/:id", locationController.GetLocation)
	locations.Post("/", middleware.Verify(3), locationController.CreateLocation)
	locations.Put("/:id", middleware.Verify(3), locationController.UpdateLocation)
	locations.Delete("/:id", middleware.Verify(3), locationController.DeleteLocation)

	// Planning template routes
	templates := api.Group("/templates", middleware.Verify(3))
	templates.Get("/", templateController.GetTemplates)
	templates.Get("/:id", templateController.GetTemplate)
	templates.Post("/", templateController.CreateTemplate)
	templates.Put("/:id", templateController.UpdateTemplate)
	templates.Delete("/:id", templateController.DeleteTemplate)

	// Planning preview and commit
	planning := api.Group("/planning", middleware.Verify(3))
	planning.Post("/preview", planningController.Preview)
	planning.Post("/generate", planningController.Generate)

	// Task routes - export before the ID routes to avoid conflicts
	tasks := api.Group("/tasks", middleware.Verify(1))
	tasks.Get("/export", exportController.ExportTasks)
	tasks.Get("/", taskController.GetTasks)
	tasks.Get("/mine", taskController.GetMyTasks)
	tasks.Post("/:id/start", taskController.StartTask)
	tasks.Post("/:id/complete", taskController.CompleteTask)
	tasks.Post("/:id/cancel", taskController.CancelTask)
	tasks.Put("/:id", middleware.Verify(3), taskController.UpdateTask)
	tasks.Delete("/:id", middleware.Verify(3), taskController.DeleteTask)

	// Admin maintenance routes
	admin := api.Group("/admin", middleware.Verify(3))
	admin.Post("/generate-daily-tasks", adminController.TriggerDailyGeneration)
	admin.Post("/reset-timers", adminController.ResetTimers)
	admin.Post("/daily-maintenance", adminController.RunDailyMaintenance)
	admin.Get("/scheduler", adminController.SchedulerStatus)
	admin.Post("/scheduler/start", adminController.StartScheduler)
	admin.Post("/scheduler/stop", adminController.StopScheduler)
	admin.Put("/scheduler/schedule", adminController.UpdateSchedulerSchedule)
}

func FiberConfig(db *gorm.DB, orchestrator *Generation.Orchestrator, scheduler *CronJobs.SchedulerService) {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))

	SetupRoutes(app, db, orchestrator, scheduler)

	app.Listen(":3001")
}
