package Scheduling

import (
	"errors"
	"fmt"
	"sort"

	"Sparkle/Models"
)

// Time-slot affinity tags carried by schedule entries.
const (
	SlotMorning     = "morning"
	SlotBeforeBreak = "beforeBreak"
	SlotAfterBreak  = "afterBreak"
	SlotAfternoon   = "afternoon"
	SlotFlexible    = "flexible"
)

// Reference kinds for schedule entries. Entries written by the current
// template editor carry opaque location ids; legacy templates reference
// locations by (partial) name.
const (
	RefID   = "id"
	RefName = "name"
)

// Severity levels for placement issues. Conflicts block a commit, warnings
// never block anything.
const (
	SeverityConflict = "CONFLICT"
	SeverityWarning  = "WARNING"
)

// Defaults used when the day config has no break window.
const (
	defaultBreakStart     = 660 // 11:00
	defaultAfternoonFloor = 720 // 12:00
)

var ErrInvalidDayConfig = errors.New("configuration de journée invalide")

// LocationRef is a tagged reference to a location. An empty kind is treated
// as a name reference so stored legacy payloads keep resolving.
type LocationRef struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// LocationConfig is one schedule entry: which location, when in the day it
// should land and how long it takes. A zero EstimatedDuration defers to the
// location's own default duration.
type LocationConfig struct {
	Location          LocationRef `json:"location"`
	Priority          int         `json:"priority"`
	TimeSlot          string      `json:"timeSlot"`
	EstimatedDuration int         `json:"estimatedDuration"`
	Constraints       string      `json:"constraints"`
}

// DayConfig describes the work day the entries are placed into. Break fields
// may both be empty for a day without a lunch break.
type DayConfig struct {
	WorkStart  string `json:"workStart"`
	WorkEnd    string `json:"workEnd"`
	BreakStart string `json:"breakStart"`
	BreakEnd   string `json:"breakEnd"`
}

// DaySchedule is the stored per-weekday variant of DayConfig inside a weekly
// schedule.
type DaySchedule struct {
	WorkStart  string           `json:"workStart"`
	WorkEnd    string           `json:"workEnd"`
	BreakStart string           `json:"breakStart"`
	BreakEnd   string           `json:"breakEnd"`
	IsActive   bool             `json:"isActive"`
	Locations  []LocationConfig `json:"locations"`
}

// Config extracts the day window of the schedule.
func (d DaySchedule) Config() DayConfig {
	return DayConfig{
		WorkStart:  d.WorkStart,
		WorkEnd:    d.WorkEnd,
		BreakStart: d.BreakStart,
		BreakEnd:   d.BreakEnd,
	}
}

// Issue is one advisory produced during placement.
type Issue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// TaskPreview is a placed entry before any task row is written.
type TaskPreview struct {
	LocationName string      `json:"locationName"`
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	Duration     int         `json:"duration"`
	Priority     int         `json:"priority"`
	TimeSlot     string      `json:"timeSlot"`
	Ref          LocationRef `json:"-"`
}

// Result is the outcome of one placement pass.
type Result struct {
	TotalDuration int           `json:"totalDuration"`
	Tasks         []TaskPreview `json:"tasks"`
	Issues        []Issue       `json:"issues"`
}

// Conflicts returns the conflict messages as a flat list.
func (r *Result) Conflicts() []string {
	return r.messages(SeverityConflict)
}

// Warnings returns the warning messages as a flat list.
func (r *Result) Warnings() []string {
	return r.messages(SeverityWarning)
}

func (r *Result) messages(severity string) []string {
	out := []string{}
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue.Message)
		}
	}
	return out
}

func (r *Result) addConflict(format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{Severity: SeverityConflict, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) addWarning(format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Build lays the entries out into the work day in one greedy left-to-right
// pass over priority order. The cursor only ever moves forward, so the
// returned previews are sorted by start time by construction.
//
// A missing location is recorded and skipped; an entry that would end after
// workEnd is recorded, kept, and stops the pass (everything after it is
// dropped).
func Build(cfg DayConfig, entries []LocationConfig, locations map[string]Models.Location) (*Result, error) {
	if cfg.WorkStart == "" || cfg.WorkEnd == "" {
		return nil, fmt.Errorf("%w: workStart et workEnd sont requis", ErrInvalidDayConfig)
	}
	workStart, err := TimeToMinutes(cfg.WorkStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDayConfig, err)
	}
	workEnd, err := TimeToMinutes(cfg.WorkEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDayConfig, err)
	}

	hasBreak := cfg.BreakStart != "" && cfg.BreakEnd != ""
	breakStart, breakEnd := 0, 0
	if hasBreak {
		if breakStart, err = TimeToMinutes(cfg.BreakStart); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDayConfig, err)
		}
		if breakEnd, err = TimeToMinutes(cfg.BreakEnd); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDayConfig, err)
		}
	}

	ordered := make([]LocationConfig, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	result := &Result{Tasks: []TaskPreview{}, Issues: []Issue{}}
	currentTime := workStart

	for _, entry := range ordered {
		location, ok := locations[entry.Location.Value]
		if !ok {
			result.addConflict("Lieu introuvable: %s", entry.Location.Value)
			continue
		}

		duration := entry.EstimatedDuration
		if duration <= 0 {
			duration = location.DefaultDuration()
		}

		switch entry.TimeSlot {
		case SlotMorning:
			morningLimit := defaultBreakStart
			if hasBreak {
				morningLimit = breakStart
			}
			if currentTime >= morningLimit {
				result.addWarning("%s prévu le matin mais placé à %s", location.Name, MinutesToTime(currentTime))
			}
		case SlotBeforeBreak:
			if hasBreak && currentTime+duration > breakStart {
				result.addConflict("%s ne peut pas être terminé avant la pause", location.Name)
			}
		case SlotAfterBreak:
			if hasBreak && currentTime < breakEnd {
				currentTime = breakEnd
			}
		case SlotAfternoon:
			floor := defaultAfternoonFloor
			if hasBreak {
				floor = breakEnd
			}
			if currentTime < floor {
				currentTime = floor
			}
		}

		// Break-overlap correction, independent of the slot tag.
		if hasBreak {
			if currentTime >= breakStart && currentTime < breakEnd {
				currentTime = breakEnd
			} else if currentTime < breakStart && currentTime+duration > breakStart {
				if entry.TimeSlot == SlotBeforeBreak {
					result.addConflict("%s chevauche la pause déjeuner", location.Name)
				} else {
					currentTime = breakEnd
					result.addWarning("%s déplacé après la pause pour éviter le chevauchement", location.Name)
				}
			}
		}

		endTime := currentTime + duration
		overCapacity := endTime > workEnd
		if overCapacity {
			result.addConflict("%s ne peut pas être terminé avant %s", location.Name, cfg.WorkEnd)
		}

		result.Tasks = append(result.Tasks, TaskPreview{
			LocationName: location.Name,
			StartTime:    MinutesToTime(currentTime),
			EndTime:      MinutesToTime(endTime),
			Duration:     duration,
			Priority:     entry.Priority,
			TimeSlot:     entry.TimeSlot,
			Ref:          entry.Location,
		})
		result.TotalDuration += duration
		currentTime = endTime

		if overCapacity {
			break
		}
	}

	return result, nil
}
