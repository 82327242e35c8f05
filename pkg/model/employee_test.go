package model

import "testing"

func prefs(ids ...ID) []ShiftPreference {
	out := make([]ShiftPreference, len(ids))
	for i, id := range ids {
		out[i] = ShiftPreference{PatternID: id, Priority: 100}
	}
	return out
}

func TestEmployee_AllowsPattern(t *testing.T) {
	tests := []struct {
		name     string
		prefs    []ShiftPreference
		pattern  ID
		expected bool
	}{
		{"unrestricted when empty", nil, 7, true},
		{"allowed pattern", prefs(1, 2, 3), 2, true},
		{"disallowed pattern", prefs(1, 2, 3), 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Employee{ShiftPreferences: tt.prefs}
			if result := e.AllowsPattern(tt.pattern); result != tt.expected {
				t.Errorf("AllowsPattern(%d) = %v, expected %v", tt.pattern, result, tt.expected)
			}
		})
	}
}

func TestEmployee_PreferencePriority(t *testing.T) {
	e := &Employee{ShiftPreferences: []ShiftPreference{{PatternID: 2, Priority: 10}}}
	if got := e.PreferencePriority(2); got != 10 {
		t.Errorf("PreferencePriority(2) = %d, expected 10", got)
	}
	if got := e.PreferencePriority(9); got != 100 {
		t.Errorf("PreferencePriority(9) = %d, expected default 100", got)
	}
}

func TestEmployee_AllowsDayGroup(t *testing.T) {
	tests := []struct {
		name     string
		groups   []ID
		group    ID
		expected bool
	}{
		{"unrestricted when empty", nil, 5, true},
		{"allowed group", []ID{1, 5}, 5, true},
		{"disallowed group", []ID{1, 2}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Employee{AllowedDayGroups: tt.groups}
			if result := e.AllowsDayGroup(tt.group); result != tt.expected {
				t.Errorf("AllowsDayGroup(%d) = %v, expected %v", tt.group, result, tt.expected)
			}
		})
	}
}

func TestEmployee_IsSalaried(t *testing.T) {
	hourly := NewHourlyEmployee(1, "Alice", 20.0)
	salaried := NewSalariedEmployee(1, "Bob", SalariedTerms{MonthlySalary: 4000})

	if hourly.IsSalaried() {
		t.Error("hourly employee should not report salaried")
	}
	if !salaried.IsSalaried() {
		t.Error("salaried employee should report salaried")
	}
	if hourly.Hourly == nil || hourly.Salaried != nil {
		t.Error("hourly constructor must set exactly Hourly")
	}
	if salaried.Salaried == nil || salaried.Hourly != nil {
		t.Error("salaried constructor must set exactly Salaried")
	}
}
