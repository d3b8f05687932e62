package Generation

import (
	"testing"
	"time"

	"Sparkle/Models"
)

func TestResetTimersUsesTaskDate(t *testing.T) {
	store := newStoreStub()
	store.resetCount = 3

	lifecycle := NewLifecycle(store)
	if err := lifecycle.ResetTimers(monday); err != nil {
		t.Fatal(err)
	}

	if len(store.resetDates) != 1 || store.resetDates[0] != "2025-03-03" {
		t.Fatalf("reset dates = %v, want [2025-03-03]", store.resetDates)
	}
}

func TestResetTimersIsRepeatable(t *testing.T) {
	store := newStoreStub()

	lifecycle := NewLifecycle(store)
	for i := 0; i < 2; i++ {
		if err := lifecycle.ResetTimers(monday); err != nil {
			t.Fatal(err)
		}
	}
	if len(store.resetDates) != 2 {
		t.Fatalf("expected both reset calls to go through, got %v", store.resetDates)
	}
}

func TestCleanupCutoff(t *testing.T) {
	store := newStoreStub()
	agentID := uint(1)
	store.tasks[taskKey(1, "2025-01-17")] = []Models.Task{{AssignedToID: &agentID, ScheduledDate: "2025-01-17"}}
	store.tasks[taskKey(1, "2025-02-21")] = []Models.Task{{AssignedToID: &agentID, ScheduledDate: "2025-02-21"}}

	lifecycle := NewLifecycle(store)
	lifecycle.Now = func() time.Time { return monday }

	if err := lifecycle.Cleanup(30); err != nil {
		t.Fatal(err)
	}

	if len(store.purgedBefore) != 1 || store.purgedBefore[0] != "2025-02-01" {
		t.Fatalf("purge cutoff = %v, want [2025-02-01]", store.purgedBefore)
	}
	if len(store.tasks[taskKey(1, "2025-01-17")]) != 0 {
		t.Error("task older than the cutoff should be gone")
	}
	if len(store.tasks[taskKey(1, "2025-02-21")]) != 1 {
		t.Error("task inside the retention window should survive")
	}
}
