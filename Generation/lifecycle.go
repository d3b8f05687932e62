package Generation

import (
	"fmt"
	"log"
	"time"
)

// Lifecycle resets task execution state and prunes old task rows.
type Lifecycle struct {
	store Store

	// Now is swapped out in tests.
	Now func() time.Time
}

func NewLifecycle(store Store) *Lifecycle {
	return &Lifecycle{store: store, Now: time.Now}
}

// ResetTimers puts every started or finished task of the date back to
// PENDING with cleared timing fields, so agents restart the day from scratch.
// Re-running it on an already reset date is a no-op.
func (l *Lifecycle) ResetTimers(date time.Time) error {
	count, err := l.store.ResetTasksOnDate(date.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("remise à zéro des minuteurs: %w", err)
	}
	if count > 0 {
		log.Printf("Minuteurs remis à zéro pour %d tâche(s) du %s", count, date.Format(dateLayout))
	}
	return nil
}

// Cleanup hard-deletes tasks scheduled before today minus daysToKeep.
func (l *Lifecycle) Cleanup(daysToKeep int) error {
	cutoff := l.Now().AddDate(0, 0, -daysToKeep).Format(dateLayout)
	count, err := l.store.DeleteTasksOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("purge des anciennes tâches: %w", err)
	}
	if count > 0 {
		log.Printf("%d tâche(s) antérieure(s) au %s supprimée(s)", count, cutoff)
	}
	return nil
}
