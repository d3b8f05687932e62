package Generation

import "Sparkle/Scheduling"

// defaultSlot is one entry of the built-in weekday schedule used when an
// agent has no template at all.
type defaultSlot struct {
	LocationName string
	StartTime    string
	Duration     int
}

// defaultWeekdaySlots is the fallback Monday-Friday tour: 07:00-15:30 with
// the 11:00-12:00 lunch break left free. Locations are referenced by name
// and silently skipped when the organization has no match.
var defaultWeekdaySlots = []defaultSlot{
	{"Infirmerie", "07:00", 20},
	{"Sanitaires rez-de-chaussée", "07:20", 30},
	{"Salle de classe 101", "07:50", 15},
	{"Salle de classe 102", "08:05", 15},
	{"Salle de classe 103", "08:20", 15},
	{"Salle de classe 104", "08:35", 15},
	{"Bureau administration", "08:50", 10},
	{"Bureau direction", "09:00", 10},
	{"Salle des professeurs", "09:10", 15},
	{"Sanitaires premier étage", "09:25", 30},
	{"Couloir principal", "09:55", 20},
	{"Hall d'entrée", "10:15", 25},
	{"Escaliers", "10:40", 20},
	{"Atelier menuiserie", "12:00", 25},
	{"Atelier mécanique", "12:25", 25},
	{"Salle de classe 201", "12:50", 15},
	{"Salle de classe 202", "13:05", 15},
	{"Réfectoire", "13:20", 60},
	{"Gymnase", "14:20", 70},
}

var defaultDayConfig = Scheduling.DayConfig{
	WorkStart:  "07:00",
	WorkEnd:    "15:30",
	BreakStart: "11:00",
	BreakEnd:   "12:00",
}

// defaultDaySchedule converts the built-in tour into builder input. Priority
// follows list order; the slot tag comes from which side of the break the
// canonical start time falls on.
func defaultDaySchedule() (Scheduling.DayConfig, []Scheduling.LocationConfig) {
	entries := make([]Scheduling.LocationConfig, 0, len(defaultWeekdaySlots))
	for i, slot := range defaultWeekdaySlots {
		entries = append(entries, Scheduling.LocationConfig{
			Location:          Scheduling.LocationRef{Kind: Scheduling.RefName, Value: slot.LocationName},
			Priority:          i + 1,
			TimeSlot:          slotForStart(slot.StartTime, defaultDayConfig),
			EstimatedDuration: slot.Duration,
		})
	}
	return defaultDayConfig, entries
}

// slotForStart derives a coarse slot tag from a canonical start time:
// before the break is morning, from the break on is afternoon.
func slotForStart(start string, cfg Scheduling.DayConfig) string {
	startMin, err := Scheduling.TimeToMinutes(start)
	if err != nil {
		return Scheduling.SlotFlexible
	}
	if cfg.BreakStart != "" {
		if breakStart, err := Scheduling.TimeToMinutes(cfg.BreakStart); err == nil && startMin < breakStart {
			return Scheduling.SlotMorning
		}
		return Scheduling.SlotAfternoon
	}
	if startMin < 660 {
		return Scheduling.SlotMorning
	}
	return Scheduling.SlotAfternoon
}
