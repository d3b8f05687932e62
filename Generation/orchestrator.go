package Generation

import (
	"log"
	"time"
)

// retentionDays is how much task history the maintenance run keeps.
const retentionDays = 30

type taskGenerator interface {
	GenerateForAllAgents(date time.Time, force bool) error
}

type timerLifecycle interface {
	ResetTimers(date time.Time) error
	Cleanup(daysToKeep int) error
}

// Orchestrator composes the timer reset, the daily generation and the
// history cleanup into the entry points the scheduler and the admin API call.
type Orchestrator struct {
	generator taskGenerator
	lifecycle timerLifecycle

	// Now is swapped out in tests.
	Now func() time.Time
}

func NewOrchestrator(generator *Generator, lifecycle *Lifecycle) *Orchestrator {
	return &Orchestrator{generator: generator, lifecycle: lifecycle, Now: time.Now}
}

// SmartDailyStartup is the non-destructive daily entry point: timers always
// reset so agents restart visually, generation only fills in agents with no
// tasks yet. Admin-curated task sets survive.
func (o *Orchestrator) SmartDailyStartup(date time.Time) error {
	log.Printf("Démarrage quotidien du %s", date.Format(dateLayout))
	if err := o.lifecycle.ResetTimers(date); err != nil {
		return err
	}
	return o.generator.GenerateForAllAgents(date, false)
}

// DailyMaintenance is the heavier admin-invoked variant: optionally
// regenerate today from scratch, reset timers, then prune old history.
func (o *Orchestrator) DailyMaintenance(force bool) error {
	today := o.Now()
	log.Printf("Maintenance quotidienne (force=%t)", force)
	if err := o.generator.GenerateForAllAgents(today, force); err != nil {
		return err
	}
	if err := o.lifecycle.ResetTimers(today); err != nil {
		return err
	}
	return o.lifecycle.Cleanup(retentionDays)
}

// ResetDailyTimers resets the date's timers without generating anything.
func (o *Orchestrator) ResetDailyTimers(date time.Time) error {
	return o.lifecycle.ResetTimers(date)
}
