package Controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"Sparkle/Models"
)

// ExportController writes day reports as Excel workbooks.
type ExportController struct {
	DB *gorm.DB
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db}
}

var exportHeaders = []string{"Date", "Heure", "Lieu", "Agent", "Statut", "Priorité", "Durée prévue (min)", "Durée réelle (min)"}

// ExportTasks streams the organization's tasks for a date as an .xlsx file.
func (ctl *ExportController) ExportTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	var tasks []Models.Task
	err := ctl.DB.Where("organization_id = ? AND scheduled_date = ?", user.OrganizationID, date).
		Order("scheduled_time ASC").
		Find(&tasks).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}

	agents := map[uint]string{}
	var users []Models.User
	if err := ctl.DB.Where("organization_id = ?", user.OrganizationID).Find(&users).Error; err == nil {
		for _, u := range users {
			agents[u.ID] = u.Name
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, task := range tasks {
		agentName := ""
		if task.AssignedToID != nil {
			agentName = agents[*task.AssignedToID]
		}
		actual := ""
		if task.ActualDuration != nil {
			actual = fmt.Sprintf("%d", *task.ActualDuration)
		}
		values := []interface{}{
			task.ScheduledDate,
			task.ScheduledTime,
			task.LocationName,
			agentName,
			task.Status,
			task.Priority,
			task.EstimatedDuration,
			actual,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="taches_%s.xlsx"`, date))
	return c.Send(buffer.Bytes())
}
