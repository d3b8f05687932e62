package Controllers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"Sparkle/Models"
	"Sparkle/Scheduling"
)

// TemplateController handles planning-template CRUD.
type TemplateController struct {
	DB *gorm.DB
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{DB: db}
}

type TemplateInput struct {
	Name      string `json:"name" validate:"required"`
	IsDefault bool   `json:"is_default"`
	IsActive  *bool  `json:"is_active"`

	// Weekly representation (preferred).
	WeeklySchedule Scheduling.WeeklySchedule `json:"weekly_schedule"`

	// Legacy single-day representation.
	WorkStart  string                      `json:"work_start"`
	WorkEnd    string                      `json:"work_end"`
	BreakStart string                      `json:"break_start"`
	BreakEnd   string                      `json:"break_end"`
	Locations  []Scheduling.LocationConfig `json:"locations"`
}

// normalizeRefs defaults untagged location references to name references, so
// payloads written before references were tagged keep resolving.
func normalizeRefs(entries []Scheduling.LocationConfig) {
	for i := range entries {
		if entries[i].Location.Kind == "" {
			entries[i].Location.Kind = Scheduling.RefName
		}
	}
}

func (input *TemplateInput) validateSchedules() error {
	for _, day := range input.WeeklySchedule {
		if _, err := Scheduling.TimeToMinutes(day.WorkStart); err != nil {
			return err
		}
		if _, err := Scheduling.TimeToMinutes(day.WorkEnd); err != nil {
			return err
		}
	}
	if input.WeeklySchedule == nil && input.WorkStart != "" {
		if _, err := Scheduling.TimeToMinutes(input.WorkStart); err != nil {
			return err
		}
		if _, err := Scheduling.TimeToMinutes(input.WorkEnd); err != nil {
			return err
		}
	}
	return nil
}

// GetTemplates lists the organization's templates.
func (ctl *TemplateController) GetTemplates(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)
	var templates []Models.PlanningTemplate
	err := ctl.DB.Where("organization_id = ?", user.OrganizationID).
		Order("is_default DESC, name ASC").
		Find(&templates).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve templates"})
	}
	return c.JSON(templates)
}

// GetTemplate fetches one template.
func (ctl *TemplateController) GetTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}
	user := c.Locals("user").(Models.User)
	var template Models.PlanningTemplate
	if err := ctl.DB.Where("organization_id = ?", user.OrganizationID).First(&template, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return c.JSON(template)
}

// CreateTemplate creates a planning template. A template carries either a
// weekly schedule or the legacy single-day fields, never both.
func (ctl *TemplateController) CreateTemplate(c *fiber.Ctx) error {
	var input TemplateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.WeeklySchedule != nil && len(input.Locations) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A template holds either a weekly schedule or legacy day fields, not both",
		})
	}
	if err := input.validateSchedules(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := c.Locals("user").(Models.User)
	template := Models.PlanningTemplate{
		PublicID:       uuid.NewString(),
		Name:           input.Name,
		OrganizationID: user.OrganizationID,
		IsDefault:      input.IsDefault,
		IsActive:       true,
		WorkStart:      input.WorkStart,
		WorkEnd:        input.WorkEnd,
		BreakStart:     input.BreakStart,
		BreakEnd:       input.BreakEnd,
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if input.WeeklySchedule != nil {
		for _, day := range input.WeeklySchedule {
			normalizeRefs(day.Locations)
		}
		raw, err := json.Marshal(input.WeeklySchedule)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		template.WeeklySchedule = raw
	} else if len(input.Locations) > 0 {
		normalizeRefs(input.Locations)
		raw, err := json.Marshal(input.Locations)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		template.Locations = raw
	}

	if err := ctl.DB.Create(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// UpdateTemplate replaces the template's definition.
func (ctl *TemplateController) UpdateTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	user := c.Locals("user").(Models.User)
	var template Models.PlanningTemplate
	if err := ctl.DB.Where("organization_id = ?", user.OrganizationID).First(&template, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	var input TemplateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := input.validateSchedules(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	template.Name = input.Name
	template.IsDefault = input.IsDefault
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}
	template.WorkStart = input.WorkStart
	template.WorkEnd = input.WorkEnd
	template.BreakStart = input.BreakStart
	template.BreakEnd = input.BreakEnd

	template.WeeklySchedule = nil
	template.Locations = nil
	if input.WeeklySchedule != nil {
		for _, day := range input.WeeklySchedule {
			normalizeRefs(day.Locations)
		}
		raw, err := json.Marshal(input.WeeklySchedule)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		template.WeeklySchedule = raw
	} else if len(input.Locations) > 0 {
		normalizeRefs(input.Locations)
		raw, err := json.Marshal(input.Locations)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		template.Locations = raw
	}

	if err := ctl.DB.Save(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update template"})
	}
	return c.JSON(template)
}

// DeleteTemplate removes a template.
func (ctl *TemplateController) DeleteTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}
	user := c.Locals("user").(Models.User)
	var template Models.PlanningTemplate
	if err := ctl.DB.Where("organization_id = ?", user.OrganizationID).First(&template, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	ctl.DB.Delete(&template)
	return c.JSON(fiber.Map{"message": "Template deleted successfully"})
}
