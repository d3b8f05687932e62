package Generation

import (
	"errors"
	"testing"
	"time"
)

type generatorStub struct {
	calls []struct {
		date  string
		force bool
	}
	err error
}

func (g *generatorStub) GenerateForAllAgents(date time.Time, force bool) error {
	g.calls = append(g.calls, struct {
		date  string
		force bool
	}{date.Format(dateLayout), force})
	return g.err
}

type lifecycleStub struct {
	resets   []string
	cleanups []int
	resetErr error
}

func (l *lifecycleStub) ResetTimers(date time.Time) error {
	l.resets = append(l.resets, date.Format(dateLayout))
	return l.resetErr
}

func (l *lifecycleStub) Cleanup(daysToKeep int) error {
	l.cleanups = append(l.cleanups, daysToKeep)
	return nil
}

func TestSmartDailyStartup(t *testing.T) {
	generator := &generatorStub{}
	lifecycle := &lifecycleStub{}
	orchestrator := &Orchestrator{generator: generator, lifecycle: lifecycle, Now: func() time.Time { return monday }}

	if err := orchestrator.SmartDailyStartup(monday); err != nil {
		t.Fatal(err)
	}

	if len(lifecycle.resets) != 1 || lifecycle.resets[0] != "2025-03-03" {
		t.Fatalf("resets = %v, want [2025-03-03]", lifecycle.resets)
	}
	if len(generator.calls) != 1 || generator.calls[0].force {
		t.Fatalf("startup must generate exactly once without force, got %v", generator.calls)
	}
	if len(lifecycle.cleanups) != 0 {
		t.Fatalf("startup must not prune history, got %v", lifecycle.cleanups)
	}
}

func TestSmartDailyStartupStopsOnResetFailure(t *testing.T) {
	generator := &generatorStub{}
	lifecycle := &lifecycleStub{resetErr: errors.New("db down")}
	orchestrator := &Orchestrator{generator: generator, lifecycle: lifecycle, Now: func() time.Time { return monday }}

	if err := orchestrator.SmartDailyStartup(monday); err == nil {
		t.Fatal("expected the reset failure to surface")
	}
	if len(generator.calls) != 0 {
		t.Fatal("generation must not run after a failed reset")
	}
}

func TestDailyMaintenance(t *testing.T) {
	generator := &generatorStub{}
	lifecycle := &lifecycleStub{}
	orchestrator := &Orchestrator{generator: generator, lifecycle: lifecycle, Now: func() time.Time { return monday }}

	if err := orchestrator.DailyMaintenance(true); err != nil {
		t.Fatal(err)
	}

	if len(generator.calls) != 1 || !generator.calls[0].force || generator.calls[0].date != "2025-03-03" {
		t.Fatalf("maintenance generation calls = %v", generator.calls)
	}
	if len(lifecycle.resets) != 1 {
		t.Fatalf("resets = %v, want one", lifecycle.resets)
	}
	if len(lifecycle.cleanups) != 1 || lifecycle.cleanups[0] != retentionDays {
		t.Fatalf("cleanups = %v, want [%d]", lifecycle.cleanups, retentionDays)
	}
}

func TestDailyMaintenanceStopsOnGenerationFailure(t *testing.T) {
	generator := &generatorStub{err: errors.New("boom")}
	lifecycle := &lifecycleStub{}
	orchestrator := &Orchestrator{generator: generator, lifecycle: lifecycle, Now: func() time.Time { return monday }}

	if err := orchestrator.DailyMaintenance(false); err == nil {
		t.Fatal("expected the generation failure to surface")
	}
	if len(lifecycle.resets) != 0 || len(lifecycle.cleanups) != 0 {
		t.Fatal("reset and cleanup must not run after a failed generation")
	}
}

func TestResetDailyTimers(t *testing.T) {
	lifecycle := &lifecycleStub{}
	orchestrator := &Orchestrator{generator: &generatorStub{}, lifecycle: lifecycle, Now: time.Now}

	if err := orchestrator.ResetDailyTimers(monday); err != nil {
		t.Fatal(err)
	}
	if len(lifecycle.resets) != 1 || lifecycle.resets[0] != "2025-03-03" {
		t.Fatalf("resets = %v, want [2025-03-03]", lifecycle.resets)
	}
}
