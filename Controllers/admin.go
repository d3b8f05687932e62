package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"Sparkle/CronJobs"
	"Sparkle/Generation"
)

// AdminController exposes the orchestrator entry points and the scheduler
// lifecycle to admins.
type AdminController struct {
	Orchestrator *Generation.Orchestrator
	Scheduler    *CronJobs.SchedulerService
}

func NewAdminController(orchestrator *Generation.Orchestrator, scheduler *CronJobs.SchedulerService) *AdminController {
	return &AdminController{Orchestrator: orchestrator, Scheduler: scheduler}
}

func parseDateQuery(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// TriggerDailyGeneration runs the non-destructive daily startup for a date.
func (ctl *AdminController) TriggerDailyGeneration(c *fiber.Ctx) error {
	date, err := parseDateQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}
	if err := ctl.Orchestrator.SmartDailyStartup(date); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Génération quotidienne exécutée", "date": date.Format("2006-01-02")})
}

// RunDailyMaintenance runs the destructive maintenance variant.
func (ctl *AdminController) RunDailyMaintenance(c *fiber.Ctx) error {
	force := c.QueryBool("force")
	if err := ctl.Orchestrator.DailyMaintenance(force); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Maintenance quotidienne exécutée", "force": force})
}

// ResetTimers resets the date's task timers without generating anything.
func (ctl *AdminController) ResetTimers(c *fiber.Ctx) error {
	date, err := parseDateQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}
	if err := ctl.Orchestrator.ResetDailyTimers(date); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Minuteurs remis à zéro", "date": date.Format("2006-01-02")})
}

// SchedulerStatus reports the daily scheduler state.
func (ctl *AdminController) SchedulerStatus(c *fiber.Ctx) error {
	return c.JSON(ctl.Scheduler.GetStatus())
}

// StartScheduler starts the daily scheduler.
func (ctl *AdminController) StartScheduler(c *fiber.Ctx) error {
	if err := ctl.Scheduler.Start(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ctl.Scheduler.GetStatus())
}

// StopScheduler stops the daily scheduler.
func (ctl *AdminController) StopScheduler(c *fiber.Ctx) error {
	ctl.Scheduler.Stop()
	return c.JSON(ctl.Scheduler.GetStatus())
}

type ScheduleInput struct {
	Schedule string `json:"schedule" validate:"required"`
}

// UpdateSchedulerSchedule changes the cron expression of the daily job.
func (ctl *AdminController) UpdateSchedulerSchedule(c *fiber.Ctx) error {
	var input ScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := ctl.Scheduler.UpdateSchedule(input.Schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ctl.Scheduler.GetStatus())
}
