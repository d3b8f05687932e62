package Generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"Sparkle/Models"
	"Sparkle/Scheduling"
)

// dateLayout is how task dates are stored.
const dateLayout = "2006-01-02"

// timeSlotEntry is one item of a legacy per-agent cleaning template.
type timeSlotEntry struct {
	LocationName string `json:"locationName"`
	StartTime    string `json:"startTime"`
	Duration     int    `json:"duration"`
}

// Generator materializes the daily task rows for every active agent. All
// schedule sources (weekly template, legacy per-agent template, built-in
// weekday tour) are converted to builder input and run through
// Scheduling.Build, so every generated day obeys the same break and slot
// rules.
type Generator struct {
	store Store
	locks *keyedLocks
}

func NewGenerator(store Store) *Generator {
	return &Generator{store: store, locks: newKeyedLocks()}
}

// GenerateForAllAgents creates the task rows of the date for each active
// agent. Without force, an agent that already has tasks on the date is left
// untouched; with force their tasks are deleted and rebuilt from the current
// template state.
//
// Each agent runs in its own error boundary: one agent's store failure is
// collected and the loop moves on, so a bad record cannot abort the whole
// nightly run.
func (g *Generator) GenerateForAllAgents(date time.Time, force bool) error {
	agents, err := g.store.FindActiveAgents(0)
	if err != nil {
		return fmt.Errorf("chargement des agents: %w", err)
	}

	var failures []error
	for _, agent := range agents {
		if err := g.generateForAgent(agent, date, force); err != nil {
			log.Printf("Génération agent %d (%s): %v", agent.ID, agent.Name, err)
			failures = append(failures, fmt.Errorf("agent %d: %w", agent.ID, err))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("génération du %s: %w", date.Format(dateLayout), errors.Join(failures...))
	}
	return nil
}

func (g *Generator) generateForAgent(agent Models.User, date time.Time, force bool) error {
	dateKey := date.Format(dateLayout)

	unlock := g.locks.Lock(fmt.Sprintf("%d|%s", agent.ID, dateKey))
	defer unlock()

	existing, err := g.store.FindTasksForAgentOnDate(agent.ID, dateKey)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		if !force {
			// Admin hand-edits survive a non-forced run.
			return nil
		}
		if err := g.store.DeleteTasksForAgentOnDate(agent.ID, dateKey); err != nil {
			return err
		}
	}

	cfg, entries, templateID, ok, err := g.resolveSource(agent, date)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	locations, err := ResolveLocations(g.store, entries)
	if err != nil {
		return err
	}

	result, err := Scheduling.Build(cfg, entries, locations)
	if err != nil {
		return err
	}
	for _, issue := range result.Issues {
		log.Printf("Planification agent %d: [%s] %s", agent.ID, issue.Severity, issue.Message)
	}

	tasks := make([]Models.Task, 0, len(result.Tasks))
	for _, preview := range result.Tasks {
		location := locations[preview.Ref.Value]
		organizationID := agent.OrganizationID
		if organizationID == 0 {
			organizationID = location.OrganizationID
		}
		tasks = append(tasks, Models.Task{
			Title:             "Nettoyage " + preview.LocationName,
			Description:       "Nettoyage quotidien",
			LocationID:        location.ID,
			LocationName:      preview.LocationName,
			AssignedToID:      &agent.ID,
			Status:            Models.TaskPending,
			Priority:          TaskPriority(preview.TimeSlot, location),
			EstimatedDuration: preview.Duration,
			ScheduledDate:     dateKey,
			ScheduledTime:     preview.StartTime,
			TimeSlot:          preview.TimeSlot,
			IsRecurring:       true,
			TemplateID:        templateID,
			OrganizationID:    organizationID,
		})
	}
	return g.store.CreateTasks(tasks)
}

// TaskPriority promotes infirmary and sanitary locations cleaned in the
// morning slot to HIGH; everything else is MEDIUM.
func TaskPriority(timeSlot string, location Models.Location) string {
	if timeSlot == Scheduling.SlotMorning &&
		(location.Type == Models.LocationInfirmary || location.Type == Models.LocationSanitary) {
		return Models.PriorityHigh
	}
	return Models.PriorityMedium
}

// resolveSource picks the schedule that applies to the agent on the date:
// an active planning template with a usable weekly day wins, then the legacy
// per-agent template, then the built-in weekday tour. Weekends without a
// template generate nothing. A template whose stored JSON fails to parse is
// logged and falls through to the next source.
func (g *Generator) resolveSource(agent Models.User, date time.Time) (Scheduling.DayConfig, []Scheduling.LocationConfig, *uint, bool, error) {
	templates, err := g.store.FindActivePlanningTemplates(agent.OrganizationID)
	if err != nil {
		return Scheduling.DayConfig{}, nil, nil, false, err
	}
	for i := range templates {
		template := templates[i]
		weekly, err := Scheduling.DecodeWeekly(template.WeeklySchedule)
		if err != nil {
			log.Printf("Template %d (%s): planning hebdomadaire illisible: %v", template.ID, template.Name, err)
			continue
		}
		if day, ok := weekly.DayFor(date); ok {
			return day.Config(), day.Locations, &template.ID, true, nil
		}
	}

	legacy, err := g.store.FindActiveCleaningTemplateForAgent(agent.ID)
	if err != nil {
		return Scheduling.DayConfig{}, nil, nil, false, err
	}
	if legacy != nil {
		cfg, entries, ok := convertLegacyTemplate(legacy)
		if ok {
			return cfg, entries, &legacy.ID, true, nil
		}
	}

	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return Scheduling.DayConfig{}, nil, nil, false, nil
	}
	cfg, entries := defaultDaySchedule()
	return cfg, entries, nil, true, nil
}

// convertLegacyTemplate flattens a per-agent template's slot list into
// builder input, keeping list order as priority.
func convertLegacyTemplate(template *Models.CleaningTemplate) (Scheduling.DayConfig, []Scheduling.LocationConfig, bool) {
	var slots []timeSlotEntry
	if len(template.TimeSlots) > 0 {
		if err := json.Unmarshal(template.TimeSlots, &slots); err != nil {
			log.Printf("Template agent %d: créneaux illisibles: %v", template.AgentID, err)
			return Scheduling.DayConfig{}, nil, false
		}
	}
	if len(slots) == 0 {
		return Scheduling.DayConfig{}, nil, false
	}

	cfg := Scheduling.DayConfig{
		WorkStart:  template.WorkStart,
		WorkEnd:    template.WorkEnd,
		BreakStart: template.BreakStart,
		BreakEnd:   template.BreakEnd,
	}
	if cfg.WorkStart == "" || cfg.WorkEnd == "" {
		cfg = defaultDayConfig
	}

	entries := make([]Scheduling.LocationConfig, 0, len(slots))
	for i, slot := range slots {
		entries = append(entries, Scheduling.LocationConfig{
			Location:          Scheduling.LocationRef{Kind: Scheduling.RefName, Value: slot.LocationName},
			Priority:          i + 1,
			TimeSlot:          slotForStart(slot.StartTime, cfg),
			EstimatedDuration: slot.Duration,
		})
	}
	return cfg, entries, true
}

// ResolveLocations looks every referenced location up by its tagged
// reference. Missing locations stay absent from the map; the builder records
// them as conflicts and skips their entries.
func ResolveLocations(store Store, entries []Scheduling.LocationConfig) (map[string]Models.Location, error) {
	locations := make(map[string]Models.Location, len(entries))
	for _, entry := range entries {
		if _, done := locations[entry.Location.Value]; done {
			continue
		}
		var location *Models.Location
		var err error
		if entry.Location.Kind == Scheduling.RefID {
			location, err = store.FindLocationByPublicID(entry.Location.Value)
		} else {
			location, err = store.FindLocationByNameContains(entry.Location.Value)
		}
		if err != nil {
			return nil, err
		}
		if location != nil {
			locations[entry.Location.Value] = *location
		}
	}
	return locations, nil
}
