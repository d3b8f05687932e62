package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Sparkle/Models"
)

// OrganizationController is the super-admin tenant surface.
type OrganizationController struct {
	DB *gorm.DB
}

func NewOrganizationController(db *gorm.DB) *OrganizationController {
	return &OrganizationController{DB: db}
}

type OrganizationInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

func (ctl *OrganizationController) GetOrganizations(c *fiber.Ctx) error {
	var organizations []Models.Organization
	if err := ctl.DB.Find(&organizations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve organizations"})
	}
	return c.JSON(organizations)
}

func (ctl *OrganizationController) CreateOrganization(c *fiber.Ctx) error {
	var input OrganizationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	organization := Models.Organization{
		Name:     input.Name,
		Address:  input.Address,
		Contact:  input.Contact,
		IsActive: true,
	}
	if err := ctl.DB.Create(&organization).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An organization with this name already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(organization)
}

func (ctl *OrganizationController) UpdateOrganization(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid organization ID"})
	}

	var organization Models.Organization
	if err := ctl.DB.First(&organization, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
	}

	var input OrganizationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	organization.Name = input.Name
	organization.Address = input.Address
	organization.Contact = input.Contact
	if err := ctl.DB.Save(&organization).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update organization"})
	}
	return c.JSON(organization)
}
