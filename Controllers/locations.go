package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"Sparkle/Models"
)

// LocationController handles location-related API endpoints.
type LocationController struct {
	DB *gorm.DB
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{DB: db}
}

type LocationInput struct {
	Name                string  `json:"name" validate:"required"`
	Floor               string  `json:"floor"`
	Type                string  `json:"type" validate:"required"`
	SurfaceArea         float64 `json:"surface_area" validate:"gte=0"`
	CleaningCoefficient float64 `json:"cleaning_coefficient" validate:"gte=0"`
}

// GetLocations lists the caller's organization locations.
func (ctl *LocationController) GetLocations(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)
	var locations []Models.Location
	query := ctl.DB.Where("organization_id = ?", user.OrganizationID)
	if search := c.Query("q"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if err := query.Order("name ASC").Find(&locations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve locations"})
	}
	return c.JSON(locations)
}

// GetLocation fetches one location by numeric id.
func (ctl *LocationController) GetLocation(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	user := c.Locals("user").(Models.User)
	var location Models.Location
	if err := ctl.DB.Where("organization_id = ?", user.OrganizationID).First(&location, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}
	return c.JSON(location)
}

// CreateLocation creates a location in the caller's organization.
func (ctl *LocationController) CreateLocation(c *fiber.Ctx) error {
	var input LocationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := c.Locals("user").(Models.User)
	location := Models.Location{
		PublicID:            uuid.NewString(),
		Name:                input.Name,
		Floor:               input.Floor,
		Type:                input.Type,
		SurfaceArea:         input.SurfaceArea,
		CleaningCoefficient: input.CleaningCoefficient,
		OrganizationID:      user.OrganizationID,
	}
	if err := ctl.DB.Create(&location).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create location"})
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

// UpdateLocation updates location fields.
func (ctl *LocationController) UpdateLocation(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	user := c.Locals("user").(Models.User)
	var location Models.Location
	if err := ctl.DB.Where("organization_id = ?", user.OrganizationID).First(&location, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}

	var input LocationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	location.Name = input.Name
	location.Floor = input.Floor
	location.Type = input.Type
	location.SurfaceArea = input.SurfaceArea
	location.CleaningCoefficient = input.CleaningCoefficient
	if err := ctl.DB.Save(&location).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update location"})
	}
	return c.JSON(location)
}

// DeleteLocation removes a location.
func (ctl *LocationController) DeleteLocation(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID"})
	}

	user := c.Locals("user").(Models.User)
	var location Models.Location
	if err := ctl.DB.Where("organization_id = ?", user.OrganizationID).First(&location, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}
	ctl.DB.Delete(&location)
	return c.JSON(fiber.Map{"message": "Location deleted successfully"})
}
