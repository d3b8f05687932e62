package Generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"Sparkle/Models"
	"Sparkle/Scheduling"
)

// monday is a fixed weekday date used across the generation tests.
var monday = time.Date(2025, time.March, 3, 6, 0, 0, 0, time.UTC)

// saturday in the same week.
var saturday = time.Date(2025, time.March, 8, 6, 0, 0, 0, time.UTC)

type storeStub struct {
	agents          []Models.User
	tasks           map[string][]Models.Task
	templates       []Models.PlanningTemplate
	legacy          map[uint]*Models.CleaningTemplate
	locationsByID   map[string]Models.Location
	locationsByName map[string]Models.Location

	deletedFor   []string
	resetDates   []string
	resetCount   int64
	purgedBefore []string

	findTasksErrFor uint
}

func newStoreStub() *storeStub {
	return &storeStub{
		tasks:           map[string][]Models.Task{},
		legacy:          map[uint]*Models.CleaningTemplate{},
		locationsByID:   map[string]Models.Location{},
		locationsByName: map[string]Models.Location{},
	}
}

func taskKey(agentID uint, date string) string {
	return fmt.Sprintf("%d|%s", agentID, date)
}

func (s *storeStub) FindActiveAgents(organizationID uint) ([]Models.User, error) {
	return s.agents, nil
}

func (s *storeStub) FindTasksForAgentOnDate(agentID uint, date string) ([]Models.Task, error) {
	if s.findTasksErrFor != 0 && agentID == s.findTasksErrFor {
		return nil, errors.New("store unavailable")
	}
	return s.tasks[taskKey(agentID, date)], nil
}

func (s *storeStub) FindActivePlanningTemplates(organizationID uint) ([]Models.PlanningTemplate, error) {
	var out []Models.PlanningTemplate
	for _, template := range s.templates {
		if template.OrganizationID == organizationID && template.IsActive {
			out = append(out, template)
		}
	}
	return out, nil
}

func (s *storeStub) FindActiveCleaningTemplateForAgent(agentID uint) (*Models.CleaningTemplate, error) {
	return s.legacy[agentID], nil
}

func (s *storeStub) FindLocationByPublicID(publicID string) (*Models.Location, error) {
	if location, ok := s.locationsByID[publicID]; ok {
		return &location, nil
	}
	return nil, nil
}

func (s *storeStub) FindLocationByNameContains(text string) (*Models.Location, error) {
	if location, ok := s.locationsByName[text]; ok {
		return &location, nil
	}
	for name, location := range s.locationsByName {
		if strings.Contains(name, text) {
			return &location, nil
		}
	}
	return nil, nil
}

func (s *storeStub) CreateTasks(tasks []Models.Task) error {
	for _, task := range tasks {
		key := taskKey(*task.AssignedToID, task.ScheduledDate)
		s.tasks[key] = append(s.tasks[key], task)
	}
	return nil
}

func (s *storeStub) DeleteTasksForAgentOnDate(agentID uint, date string) error {
	key := taskKey(agentID, date)
	s.deletedFor = append(s.deletedFor, key)
	delete(s.tasks, key)
	return nil
}

func (s *storeStub) ResetTasksOnDate(date string) (int64, error) {
	s.resetDates = append(s.resetDates, date)
	return s.resetCount, nil
}

func (s *storeStub) DeleteTasksOlderThan(date string) (int64, error) {
	s.purgedBefore = append(s.purgedBefore, date)
	var removed int64
	for key, tasks := range s.tasks {
		var kept []Models.Task
		for _, task := range tasks {
			if task.ScheduledDate < date {
				removed++
				continue
			}
			kept = append(kept, task)
		}
		s.tasks[key] = kept
	}
	return removed, nil
}

func agent(id, orgID uint) Models.User {
	worker := Models.User{
		Name:           fmt.Sprintf("Agent %d", id),
		Role:           Models.RoleAgent,
		OrganizationID: orgID,
		IsActive:       true,
	}
	worker.ID = id
	return worker
}

func weeklyTemplate(t *testing.T, orgID uint, day string, schedule Scheduling.DaySchedule) Models.PlanningTemplate {
	t.Helper()
	raw, err := json.Marshal(Scheduling.WeeklySchedule{day: schedule})
	if err != nil {
		t.Fatal(err)
	}
	template := Models.PlanningTemplate{
		Name:           "Planning hebdomadaire",
		OrganizationID: orgID,
		IsActive:       true,
		WeeklySchedule: raw,
	}
	template.ID = 7
	return template
}

func TestGenerateFromWeeklyTemplate(t *testing.T) {
	store := newStoreStub()
	store.agents = []Models.User{agent(1, 1)}
	infirmary := Models.Location{
		PublicID:       "loc-inf",
		Name:           "Infirmerie",
		Type:           Models.LocationInfirmary,
		OrganizationID: 1,
	}
	infirmary.ID = 11
	store.locationsByID["loc-inf"] = infirmary
	store.templates = []Models.PlanningTemplate{weeklyTemplate(t, 1, "monday", Scheduling.DaySchedule{
		WorkStart: "07:00",
		WorkEnd:   "15:30",
		IsActive:  true,
		Locations: []Scheduling.LocationConfig{{
			Location:          Scheduling.LocationRef{Kind: Scheduling.RefID, Value: "loc-inf"},
			Priority:          1,
			TimeSlot:          Scheduling.SlotMorning,
			EstimatedDuration: 20,
		}},
	})}

	generator := NewGenerator(store)
	if err := generator.GenerateForAllAgents(monday, false); err != nil {
		t.Fatal(err)
	}

	created := store.tasks[taskKey(1, "2025-03-03")]
	if len(created) != 1 {
		t.Fatalf("expected 1 task, got %d", len(created))
	}
	task := created[0]
	if task.Status != Models.TaskPending {
		t.Errorf("status = %s, want PENDING", task.Status)
	}
	if task.ScheduledTime != "07:00" {
		t.Errorf("scheduled time = %s, want 07:00", task.ScheduledTime)
	}
	if task.Priority != Models.PriorityHigh {
		t.Errorf("infirmary in the morning should be HIGH, got %s", task.Priority)
	}
	if task.TemplateID == nil || *task.TemplateID != 7 {
		t.Errorf("template reference missing, got %v", task.TemplateID)
	}
	if task.OrganizationID != 1 {
		t.Errorf("organization = %d, want 1", task.OrganizationID)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	store := newStoreStub()
	store.agents = []Models.User{agent(1, 1)}
	store.locationsByID["loc-inf"] = Models.Location{PublicID: "loc-inf", Name: "Infirmerie", Type: Models.LocationInfirmary, OrganizationID: 1}
	store.templates = []Models.PlanningTemplate{weeklyTemplate(t, 1, "monday", Scheduling.DaySchedule{
		WorkStart: "07:00",
		WorkEnd:   "15:30",
		IsActive:  true,
		Locations: []Scheduling.LocationConfig{{
			Location:          Scheduling.LocationRef{Kind: Scheduling.RefID, Value: "loc-inf"},
			Priority:          1,
			TimeSlot:          Scheduling.SlotMorning,
			EstimatedDuration: 20,
		}},
	})}

	generator := NewGenerator(store)
	if err := generator.GenerateForAllAgents(monday, false); err != nil {
		t.Fatal(err)
	}
	first := len(store.tasks[taskKey(1, "2025-03-03")])

	if err := generator.GenerateForAllAgents(monday, false); err != nil {
		t.Fatal(err)
	}
	second := len(store.tasks[taskKey(1, "2025-03-03")])

	if first != second {
		t.Fatalf("second non-forced run changed the task count: %d -> %d", first, second)
	}
	if len(store.deletedFor) != 0 {
		t.Fatalf("non-forced runs must never delete, got %v", store.deletedFor)
	}
}

func TestGenerateForceRegenerates(t *testing.T) {
	store := newStoreStub()
	store.agents = []Models.User{agent(1, 1)}
	agentID := uint(1)
	store.tasks[taskKey(1, "2025-03-03")] = []Models.Task{{
		Title:         "Ancienne tâche",
		AssignedToID:  &agentID,
		ScheduledDate: "2025-03-03",
	}}
	store.locationsByID["loc-cls"] = Models.Location{PublicID: "loc-cls", Name: "Salle 101", Type: Models.LocationClassroom, OrganizationID: 1}
	store.templates = []Models.PlanningTemplate{weeklyTemplate(t, 1, "monday", Scheduling.DaySchedule{
		WorkStart: "07:00",
		WorkEnd:   "15:30",
		IsActive:  true,
		Locations: []Scheduling.LocationConfig{{
			Location:          Scheduling.LocationRef{Kind: Scheduling.RefID, Value: "loc-cls"},
			Priority:          1,
			TimeSlot:          Scheduling.SlotMorning,
			EstimatedDuration: 15,
		}},
	})}

	generator := NewGenerator(store)
	if err := generator.GenerateForAllAgents(monday, true); err != nil {
		t.Fatal(err)
	}

	if len(store.deletedFor) != 1 {
		t.Fatalf("forced run must delete the existing set, got %v", store.deletedFor)
	}
	created := store.tasks[taskKey(1, "2025-03-03")]
	if len(created) != 1 || created[0].LocationName != "Salle 101" {
		t.Fatalf("expected the regenerated task set, got %+v", created)
	}
}

func TestGenerateLegacyTemplateFallback(t *testing.T) {
	store := newStoreStub()
	store.agents = []Models.User{agent(2, 1)}
	store.locationsByName["Infirmerie"] = Models.Location{Name: "Infirmerie", Type: Models.LocationInfirmary, OrganizationID: 1}

	slots, _ := json.Marshal([]timeSlotEntry{{LocationName: "Infirmerie", StartTime: "07:00", Duration: 20}})
	legacy := &Models.CleaningTemplate{
		AgentID:   2,
		IsActive:  true,
		WorkStart: "07:00",
		WorkEnd:   "15:30",
		TimeSlots: slots,
	}
	legacy.ID = 3
	store.legacy[2] = legacy

	generator := NewGenerator(store)
	if err := generator.GenerateForAllAgents(monday, false); err != nil {
		t.Fatal(err)
	}

	created := store.tasks[taskKey(2, "2025-03-03")]
	if len(created) != 1 {
		t.Fatalf("expected 1 task from the legacy template, got %d", len(created))
	}
	if created[0].TemplateID == nil || *created[0].TemplateID != 3 {
		t.Errorf("legacy template reference missing, got %v", created[0].TemplateID)
	}
	if created[0].Priority != Models.PriorityHigh {
		t.Errorf("morning infirmary from the legacy path should be HIGH, got %s", created[0].Priority)
	}
}

func TestGenerateUnreadableWeeklyFallsThrough(t *testing.T) {
	store := newStoreStub()
	store.agents = []Models.User{agent(2, 1)}
	store.locationsByName["Infirmerie"] = Models.Location{Name: "Infirmerie", Type: Models.LocationInfirmary, OrganizationID: 1}

	broken := Models.PlanningTemplate{OrganizationID: 1, IsActive: true, WeeklySchedule: []byte("{oops")}
	store.templates = []Models.PlanningTemplate{broken}

	slots, _ := json.Marshal([]timeSlotEntry{{LocationName: "Infirmerie", StartTime: "07:00", Duration: 20}})
	legacy := &Models.CleaningTemplate{AgentID: 2, IsActive: true, WorkStart: "07:00", WorkEnd: "15:30", TimeSlots: slots}
	store.legacy[2] = legacy

	generator := NewGenerator(store)
	if err := generator.GenerateForAllAgents(monday, false); err != nil {
		t.Fatal(err)
	}
	if len(store.tasks[taskKey(2, "2025-03-03")]) != 1 {
		t.Fatal("unreadable weekly schedule should fall through to the legacy template")
	}
}

func TestGenerateDefaultScheduleSkipsUnknownLocations(t *testing.T) {
	store := newStoreStub()
	store.agents = []Models.User{agent(4, 1)}
	store.locationsByName["Infirmerie"] = Models.Location{Name: "Infirmerie", Type: Models.LocationInfirmary, OrganizationID: 1}
	store.locationsByName["Gymnase"] = Models.Location{Name: "Gymnase", OrganizationID: 1}

	generator := NewGenerator(store)
	if err := generator.GenerateForAllAgents(monday, false); err != nil {
		t.Fatal(err)
	}

	created := store.tasks[taskKey(4, "2025-03-03")]
	if len(created) != 2 {
		t.Fatalf("expected tasks only for resolvable locations, got %d", len(created))
	}
	if created[0].LocationName != "Infirmerie" || created[0].ScheduledTime != "07:00" {
		t.Errorf("first default task = %s at %s, want Infirmerie at 07:00", created[0].LocationName, created[0].ScheduledTime)
	}
	// The gym is an afternoon slot: it snaps past the 11:00-12:00 break.
	if created[1].LocationName != "Gymnase" || created[1].ScheduledTime != "12:00" {
		t.Errorf("second default task = %s at %s, want Gymnase at 12:00", created[1].LocationName, created[1].ScheduledTime)
	}
}

func TestGenerateWeekendWithoutTemplate(t *testing.T) {
	store := newStoreStub()
	store.agents = []Models.User{agent(5, 1)}

	generator := NewGenerator(store)
	if err := generator.GenerateForAllAgents(saturday, false); err != nil {
		t.Fatal(err)
	}
	if len(store.tasks) != 0 {
		t.Fatalf("weekend without template must generate nothing, got %v", store.tasks)
	}
}

func TestGenerateIsolatesAgentFailures(t *testing.T) {
	store := newStoreStub()
	store.agents = []Models.User{agent(1, 1), agent(2, 1)}
	store.findTasksErrFor = 1
	store.locationsByName["Infirmerie"] = Models.Location{Name: "Infirmerie", Type: Models.LocationInfirmary, OrganizationID: 1}

	slots, _ := json.Marshal([]timeSlotEntry{{LocationName: "Infirmerie", StartTime: "07:00", Duration: 20}})
	store.legacy[2] = &Models.CleaningTemplate{AgentID: 2, IsActive: true, WorkStart: "07:00", WorkEnd: "15:30", TimeSlots: slots}

	generator := NewGenerator(store)
	err := generator.GenerateForAllAgents(monday, false)
	if err == nil {
		t.Fatal("expected an aggregate error for the failing agent")
	}
	if len(store.tasks[taskKey(2, "2025-03-03")]) != 1 {
		t.Fatal("the healthy agent must still be generated")
	}
}

func TestTaskPriorityPromotion(t *testing.T) {
	tests := []struct {
		slot     string
		location Models.Location
		want     string
	}{
		{Scheduling.SlotMorning, Models.Location{Type: Models.LocationInfirmary}, Models.PriorityHigh},
		{Scheduling.SlotMorning, Models.Location{Type: Models.LocationSanitary}, Models.PriorityHigh},
		{Scheduling.SlotMorning, Models.Location{Type: Models.LocationClassroom}, Models.PriorityMedium},
		{Scheduling.SlotAfternoon, Models.Location{Type: Models.LocationInfirmary}, Models.PriorityMedium},
		{Scheduling.SlotFlexible, Models.Location{Type: Models.LocationSanitary}, Models.PriorityMedium},
	}
	for _, tt := range tests {
		if got := TaskPriority(tt.slot, tt.location); got != tt.want {
			t.Errorf("TaskPriority(%s, %s) = %s, want %s", tt.slot, tt.location.Type, got, tt.want)
		}
	}
}
