package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlanningTemplate is an organization-owned schedule definition. Newer
// templates carry a weekly schedule (one day schedule per weekday) as JSON;
// older ones only have the flat single-day fields plus a locations list.
// The two representations are mutually exclusive.
type PlanningTemplate struct {
	gorm.Model
	PublicID       string `json:"public_id" gorm:"uniqueIndex"`
	Name           string `json:"name"`
	OrganizationID uint   `json:"organization_id" gorm:"index"`
	IsDefault      bool   `json:"is_default"`
	IsActive       bool   `json:"is_active" gorm:"default:true;index"`

	WeeklySchedule datatypes.JSON `json:"weekly_schedule"`

	// Legacy single-day representation.
	WorkStart  string         `json:"work_start"`
	WorkEnd    string         `json:"work_end"`
	BreakStart string         `json:"break_start"`
	BreakEnd   string         `json:"break_end"`
	Locations  datatypes.JSON `json:"locations"`
}

// CleaningTemplate is the legacy per-agent schedule. TimeSlots holds a JSON
// list of {locationName, startTime, duration} entries.
type CleaningTemplate struct {
	gorm.Model
	AgentID    uint           `json:"agent_id" gorm:"index"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	WorkStart  string         `json:"work_start"`
	WorkEnd    string         `json:"work_end"`
	BreakStart string         `json:"break_start"`
	BreakEnd   string         `json:"break_end"`
	TimeSlots  datatypes.JSON `json:"time_slots"`
}
