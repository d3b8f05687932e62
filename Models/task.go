package Models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. A task starts PENDING, moves to IN_PROGRESS when the agent
// starts its timer and COMPLETED when finished. CANCELLED is terminal and only
// set through an explicit update.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
	TaskCancelled  = "CANCELLED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

type Task struct {
	gorm.Model
	Title             string `json:"title"`
	Description       string `json:"description"`
	LocationID        uint   `json:"location_id" gorm:"index"`
	LocationName      string `json:"location_name"`
	AssignedToID      *uint  `json:"assigned_to_id" gorm:"index"`
	Status            string `json:"status" gorm:"default:PENDING;index"`
	Priority          string `json:"priority" gorm:"default:MEDIUM"`
	EstimatedDuration int    `json:"estimated_duration"`

	// Scheduling fields. Dates are stored as "2006-01-02" strings,
	// times of day as "HH:MM".
	ScheduledDate string `json:"scheduled_date" gorm:"index"`
	ScheduledTime string `json:"scheduled_time"`
	TimeSlot      string `json:"time_slot"`

	// Execution fields, all null until the agent acts on the task.
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	ActualDuration *int       `json:"actual_duration"`
	CompletedAt    *time.Time `json:"completed_at"`

	IsRecurring    bool  `json:"is_recurring"`
	TemplateID     *uint `json:"template_id"`
	OrganizationID uint  `json:"organization_id" gorm:"index"`
}
