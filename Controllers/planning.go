package Controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Sparkle/Generation"
	"Sparkle/Models"
	"Sparkle/Scheduling"
)

// PlanningController runs the placement pass for previews and commits.
type PlanningController struct {
	DB    *gorm.DB
	store Generation.Store
}

func NewPlanningController(db *gorm.DB) *PlanningController {
	return &PlanningController{DB: db, store: Generation.NewGormStore(db)}
}

// PlanningRequest describes one placement request: either a stored template
// (with the weekday to plan) or an ad-hoc day config with its entries.
type PlanningRequest struct {
	TemplateID uint   `json:"template_id"`
	Weekday    string `json:"weekday"`

	Day       *Scheduling.DayConfig       `json:"day"`
	Locations []Scheduling.LocationConfig `json:"locations"`

	// Commit fields, ignored by preview.
	AgentID uint   `json:"agent_id"`
	Date    string `json:"date"`
	Force   bool   `json:"force"`
}

type planningResponse struct {
	TotalDuration int                      `json:"totalDuration"`
	Tasks         []Scheduling.TaskPreview `json:"tasks"`
	Conflicts     []string                 `json:"conflicts"`
	Warnings      []string                 `json:"warnings"`
}

// Preview runs the placement pass without persisting anything. Conflicts and
// warnings come back in the 200 response; the caller decides what to do.
func (ctl *PlanningController) Preview(c *fiber.Ctx) error {
	result, _, err := ctl.runPass(c)
	if err != nil {
		return err
	}
	if result == nil {
		return nil // runPass already wrote the error response
	}
	return c.JSON(planningResponse{
		TotalDuration: result.TotalDuration,
		Tasks:         result.Tasks,
		Conflicts:     result.Conflicts(),
		Warnings:      result.Warnings(),
	})
}

// Generate runs the same pass and persists the previews as task rows for the
// agent and date. A pass with conflicts is refused.
func (ctl *PlanningController) Generate(c *fiber.Ctx) error {
	result, request, err := ctl.runPass(c)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	if conflicts := result.Conflicts(); len(conflicts) > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "Le planning contient des conflits",
			"conflicts": conflicts,
		})
	}
	if request.AgentID == 0 || request.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "agent_id and date are required"})
	}
	if _, err := time.Parse("2006-01-02", request.Date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	user := c.Locals("user").(Models.User)
	var agent Models.User
	err = ctl.DB.Where("organization_id = ? AND role = ?", user.OrganizationID, Models.RoleAgent).
		First(&agent, request.AgentID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Agent not found"})
	}

	var existing int64
	ctl.DB.Model(&Models.Task{}).
		Where("assigned_to_id = ? AND scheduled_date = ?", agent.ID, request.Date).
		Count(&existing)
	if existing > 0 {
		if !request.Force {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Des tâches existent déjà pour cet agent à cette date",
			})
		}
		if err := ctl.DB.Where("assigned_to_id = ? AND scheduled_date = ?", agent.ID, request.Date).
			Delete(&Models.Task{}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to replace existing tasks"})
		}
	}

	locations, err := Generation.ResolveLocations(ctl.store, request.Locations)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve locations"})
	}

	tasks := make([]Models.Task, 0, len(result.Tasks))
	for _, preview := range result.Tasks {
		location := locations[preview.Ref.Value]
		tasks = append(tasks, Models.Task{
			Title:             "Nettoyage " + preview.LocationName,
			Description:       "Nettoyage quotidien",
			LocationID:        location.ID,
			LocationName:      preview.LocationName,
			AssignedToID:      &agent.ID,
			Status:            Models.TaskPending,
			Priority:          Generation.TaskPriority(preview.TimeSlot, location),
			EstimatedDuration: preview.Duration,
			ScheduledDate:     request.Date,
			ScheduledTime:     preview.StartTime,
			TimeSlot:          preview.TimeSlot,
			IsRecurring:       false,
			OrganizationID:    user.OrganizationID,
		})
	}
	if len(tasks) > 0 {
		if err := ctl.DB.Create(&tasks).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create tasks"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Planning généré",
		"created":       len(tasks),
		"totalDuration": result.TotalDuration,
		"warnings":      result.Warnings(),
	})
}

// runPass parses the request, assembles the day config and entries from the
// template or the inline body, and runs the builder. On a handled request
// error it writes the response itself and returns a nil result.
func (ctl *PlanningController) runPass(c *fiber.Ctx) (*Scheduling.Result, *PlanningRequest, error) {
	var request PlanningRequest
	if err := c.BodyParser(&request); err != nil {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cfg, entries, ok, err := ctl.assembleDay(c, &request)
	if err != nil || !ok {
		return nil, nil, err
	}
	request.Locations = entries

	locations, err := Generation.ResolveLocations(ctl.store, entries)
	if err != nil {
		return nil, nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve locations"})
	}

	result, err := Scheduling.Build(cfg, entries, locations)
	if err != nil {
		if errors.Is(err, Scheduling.ErrInvalidDayConfig) {
			return nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return nil, nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return result, &request, nil
}

func (ctl *PlanningController) assembleDay(c *fiber.Ctx, request *PlanningRequest) (Scheduling.DayConfig, []Scheduling.LocationConfig, bool, error) {
	if request.TemplateID == 0 {
		if request.Day == nil {
			return Scheduling.DayConfig{}, nil, false,
				c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Either template_id or day is required"})
		}
		normalizeRefs(request.Locations)
		return *request.Day, request.Locations, true, nil
	}

	user := c.Locals("user").(Models.User)
	var template Models.PlanningTemplate
	err := ctl.DB.Where("organization_id = ?", user.OrganizationID).First(&template, request.TemplateID).Error
	if err != nil {
		return Scheduling.DayConfig{}, nil, false,
			c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	weekly, err := Scheduling.DecodeWeekly(template.WeeklySchedule)
	if err != nil {
		return Scheduling.DayConfig{}, nil, false,
			c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Stored weekly schedule is unreadable"})
	}
	if weekly != nil {
		weekday := request.Weekday
		if weekday == "" && request.Date != "" {
			if date, err := time.Parse("2006-01-02", request.Date); err == nil {
				weekday = Scheduling.WeekdayKey(date)
			}
		}
		day, ok := weekly[weekday]
		if !ok || !day.IsActive {
			return Scheduling.DayConfig{}, nil, false,
				c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No active schedule for this weekday"})
		}
		return day.Config(), day.Locations, true, nil
	}

	// Legacy single-day template.
	var entries []Scheduling.LocationConfig
	if len(template.Locations) > 0 {
		if err := json.Unmarshal(template.Locations, &entries); err != nil {
			return Scheduling.DayConfig{}, nil, false,
				c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Stored locations list is unreadable"})
		}
	}
	normalizeRefs(entries)
	cfg := Scheduling.DayConfig{
		WorkStart:  template.WorkStart,
		WorkEnd:    template.WorkEnd,
		BreakStart: template.BreakStart,
		BreakEnd:   template.BreakEnd,
	}
	return cfg, entries, true, nil
}
