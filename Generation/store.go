package Generation

import (
	"errors"

	"gorm.io/gorm"

	"Sparkle/Models"
)

// Store is the persistence boundary the generation core works against. The
// HTTP layer talks to gorm directly; everything in this package goes through
// this interface so the daily pipeline can be exercised without a database.
type Store interface {
	FindActiveAgents(organizationID uint) ([]Models.User, error)
	FindTasksForAgentOnDate(agentID uint, date string) ([]Models.Task, error)
	FindActivePlanningTemplates(organizationID uint) ([]Models.PlanningTemplate, error)
	FindActiveCleaningTemplateForAgent(agentID uint) (*Models.CleaningTemplate, error)
	FindLocationByPublicID(publicID string) (*Models.Location, error)
	FindLocationByNameContains(text string) (*Models.Location, error)
	CreateTasks(tasks []Models.Task) error
	DeleteTasksForAgentOnDate(agentID uint, date string) error
	ResetTasksOnDate(date string) (int64, error)
	DeleteTasksOlderThan(date string) (int64, error)
}

// GormStore implements Store on the application database.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// FindActiveAgents returns active agents, optionally restricted to one
// organization (0 means all organizations).
func (s *GormStore) FindActiveAgents(organizationID uint) ([]Models.User, error) {
	var agents []Models.User
	query := s.DB.Where("role = ? AND is_active = ?", Models.RoleAgent, true)
	if organizationID != 0 {
		query = query.Where("organization_id = ?", organizationID)
	}
	if err := query.Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (s *GormStore) FindTasksForAgentOnDate(agentID uint, date string) ([]Models.Task, error) {
	var tasks []Models.Task
	err := s.DB.Where("assigned_to_id = ? AND scheduled_date = ?", agentID, date).Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindActivePlanningTemplates returns the organization's active templates,
// default templates first so they win the schedule-source resolution.
func (s *GormStore) FindActivePlanningTemplates(organizationID uint) ([]Models.PlanningTemplate, error) {
	var templates []Models.PlanningTemplate
	err := s.DB.Where("organization_id = ? AND is_active = ?", organizationID, true).
		Order("is_default DESC, id ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *GormStore) FindActiveCleaningTemplateForAgent(agentID uint) (*Models.CleaningTemplate, error) {
	var template Models.CleaningTemplate
	err := s.DB.Where("agent_id = ? AND is_active = ?", agentID, true).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *GormStore) FindLocationByPublicID(publicID string) (*Models.Location, error) {
	var location Models.Location
	err := s.DB.Where("public_id = ?", publicID).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// FindLocationByNameContains resolves legacy name references, trying an exact
// match before a substring match.
func (s *GormStore) FindLocationByNameContains(text string) (*Models.Location, error) {
	var location Models.Location
	err := s.DB.Where("name = ?", text).First(&location).Error
	if err == nil {
		return &location, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	err = s.DB.Where("name LIKE ?", "%"+text+"%").First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (s *GormStore) CreateTasks(tasks []Models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return s.DB.Create(&tasks).Error
}

func (s *GormStore) DeleteTasksForAgentOnDate(agentID uint, date string) error {
	return s.DB.Where("assigned_to_id = ? AND scheduled_date = ?", agentID, date).
		Delete(&Models.Task{}).Error
}

// ResetTasksOnDate puts every started or finished task of the date back to
// PENDING and clears its timing fields. Tasks already PENDING are untouched
// by the status filter, which is what makes the reset idempotent.
func (s *GormStore) ResetTasksOnDate(date string) (int64, error) {
	result := s.DB.Model(&Models.Task{}).
		Where("scheduled_date = ? AND status IN ?", date, []string{Models.TaskInProgress, Models.TaskCompleted}).
		Updates(map[string]interface{}{
			"status":          Models.TaskPending,
			"start_time":      nil,
			"end_time":        nil,
			"actual_duration": nil,
			"completed_at":    nil,
		})
	return result.RowsAffected, result.Error
}

func (s *GormStore) DeleteTasksOlderThan(date string) (int64, error) {
	result := s.DB.Where("scheduled_date < ?", date).Delete(&Models.Task{})
	return result.RowsAffected, result.Error
}
