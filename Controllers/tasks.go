package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Sparkle/Models"
)

// TaskController handles task listing and execution events.
type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

// GetTasks lists the organization's tasks, filtered by date and/or agent.
func (ctl *TaskController) GetTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)
	query := ctl.DB.Where("organization_id = ?", user.OrganizationID)
	if date := c.Query("date"); date != "" {
		query = query.Where("scheduled_date = ?", date)
	}
	if agentID := c.Query("agent_id"); agentID != "" {
		query = query.Where("assigned_to_id = ?", agentID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []Models.Task
	if err := query.Order("scheduled_date ASC, scheduled_time ASC").Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return c.JSON(tasks)
}

// GetMyTasks lists the calling agent's tasks for a date (today by default).
func (ctl *TaskController) GetMyTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(Models.User)
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	var tasks []Models.Task
	err := ctl.DB.Where("assigned_to_id = ? AND scheduled_date = ?", user.ID, date).
		Order("scheduled_time ASC").
		Find(&tasks).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return c.JSON(tasks)
}

func (ctl *TaskController) findTask(c *fiber.Ctx) (*Models.Task, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}
	user := c.Locals("user").(Models.User)
	var task Models.Task
	if err := ctl.DB.Where("organization_id = ?", user.OrganizationID).First(&task, id).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}
	return &task, nil
}

// StartTask moves a pending task to IN_PROGRESS and stamps its start time.
func (ctl *TaskController) StartTask(c *fiber.Ctx) error {
	task, err := ctl.findTask(c)
	if task == nil {
		return err
	}
	if task.Status != Models.TaskPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Task is not pending"})
	}

	now := time.Now()
	task.Status = Models.TaskInProgress
	task.StartTime = &now
	if err := ctl.DB.Save(task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start task"})
	}
	return c.JSON(task)
}

// CompleteTask finishes a running task, stamping end time, actual duration
// and completion time.
func (ctl *TaskController) CompleteTask(c *fiber.Ctx) error {
	task, err := ctl.findTask(c)
	if task == nil {
		return err
	}
	if task.Status != Models.TaskInProgress {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Task is not in progress"})
	}

	now := time.Now()
	task.Status = Models.TaskCompleted
	task.EndTime = &now
	task.CompletedAt = &now
	if task.StartTime != nil {
		minutes := int(now.Sub(*task.StartTime).Minutes())
		task.ActualDuration = &minutes
	}
	if err := ctl.DB.Save(task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete task"})
	}
	return c.JSON(task)
}

// CancelTask marks a task CANCELLED. Terminal: a cancelled task is only
// revived through the daily timer reset or an explicit update.
func (ctl *TaskController) CancelTask(c *fiber.Ctx) error {
	task, err := ctl.findTask(c)
	if task == nil {
		return err
	}
	if task.Status == Models.TaskCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Task is already completed"})
	}

	task.Status = Models.TaskCancelled
	if err := ctl.DB.Save(task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel task"})
	}
	return c.JSON(task)
}

type TaskUpdateInput struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Priority          string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	EstimatedDuration int    `json:"estimated_duration" validate:"gte=0"`
	ScheduledTime     string `json:"scheduled_time"`
	AssignedToID      *uint  `json:"assigned_to_id"`
}

// UpdateTask lets an admin adjust task fields.
func (ctl *TaskController) UpdateTask(c *fiber.Ctx) error {
	task, err := ctl.findTask(c)
	if task == nil {
		return err
	}

	var input TaskUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.Title != "" {
		task.Title = input.Title
	}
	if input.Description != "" {
		task.Description = input.Description
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.EstimatedDuration > 0 {
		task.EstimatedDuration = input.EstimatedDuration
	}
	if input.ScheduledTime != "" {
		task.ScheduledTime = input.ScheduledTime
	}
	if input.AssignedToID != nil {
		task.AssignedToID = input.AssignedToID
	}

	if err := ctl.DB.Save(task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update task"})
	}
	return c.JSON(task)
}

// DeleteTask removes a task.
func (ctl *TaskController) DeleteTask(c *fiber.Ctx) error {
	task, err := ctl.findTask(c)
	if task == nil {
		return err
	}
	ctl.DB.Delete(task)
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}
