package Scheduling

import "testing"

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"07:00", 420},
		{"11:30", 690},
		{"15:30", 930},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		got, err := TimeToMinutes(tt.input)
		if err != nil {
			t.Fatalf("TimeToMinutes(%q) returned error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestTimeToMinutesMalformed(t *testing.T) {
	for _, input := range []string{"", "abc", "morning"} {
		if _, err := TimeToMinutes(input); err == nil {
			t.Errorf("TimeToMinutes(%q) expected error", input)
		}
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "00:00"},
		{420, "07:00"},
		{935, "15:35"},
		{1439, "23:59"},
		// Past-midnight overflow stays visible instead of wrapping.
		{1450, "24:10"},
		{1500, "25:00"},
	}
	for _, tt := range tests {
		if got := MinutesToTime(tt.input); got != tt.want {
			t.Errorf("MinutesToTime(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, hhmm := range []string{"07:00", "11:45", "15:30"} {
		minutes, err := TimeToMinutes(hhmm)
		if err != nil {
			t.Fatal(err)
		}
		if got := MinutesToTime(minutes); got != hhmm {
			t.Errorf("round trip of %q gave %q", hhmm, got)
		}
	}
}
