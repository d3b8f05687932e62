package Scheduling

import (
	"encoding/json"
	"strings"
	"time"
)

// WeeklySchedule maps lowercase english weekday names ("monday".."sunday") to
// their day schedule, mirroring the JSON stored on planning templates.
type WeeklySchedule map[string]DaySchedule

// DecodeWeekly parses the stored weekly-schedule JSON. An empty payload is a
// template without a weekly schedule, not an error.
func DecodeWeekly(raw []byte) (WeeklySchedule, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var weekly WeeklySchedule
	if err := json.Unmarshal(raw, &weekly); err != nil {
		return nil, err
	}
	return weekly, nil
}

// WeekdayKey returns the weekly-schedule key for a date.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// DayFor returns the schedule for the date's weekday, if one is usable:
// active with at least one location.
func (w WeeklySchedule) DayFor(t time.Time) (DaySchedule, bool) {
	day, ok := w[WeekdayKey(t)]
	if !ok || !day.IsActive || len(day.Locations) == 0 {
		return DaySchedule{}, false
	}
	return day, true
}
