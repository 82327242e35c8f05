package model

import "testing"

func TestShiftPattern_WorkMinutes(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		brk      int
		expected int
	}{
		{"8h shift with 1h break", 480, 60, 420},
		{"4h shift no break", 240, 0, 240},
		{"break exceeds duration clamps to zero", 60, 90, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ShiftPattern{DurationMin: tt.duration, BreakMinutes: tt.brk}
			if result := p.WorkMinutes(); result != tt.expected {
				t.Errorf("WorkMinutes() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestShiftPattern_EndMinute(t *testing.T) {
	p := &ShiftPattern{StartMinute: 22 * 60, DurationMin: 8 * 60}
	if got, want := p.EndMinute(), 30*60; got != want {
		t.Errorf("EndMinute() = %v, expected %v (crosses midnight)", got, want)
	}
}
