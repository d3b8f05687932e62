package Scheduling

import "fmt"

// TimeToMinutes converts a wall-clock "HH:MM" string to minutes since
// midnight. Malformed input is a caller bug and returns an error.
func TimeToMinutes(hhmm string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("heure invalide %q: %w", hhmm, err)
	}
	return hours*60 + minutes, nil
}

// MinutesToTime is the inverse of TimeToMinutes. Values past midnight render
// with hours >= 24 on purpose, so an overflowing plan is visible instead of
// silently wrapping to the next day.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
