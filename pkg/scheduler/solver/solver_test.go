package solver

import (
	"testing"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/paiban/internal/coverage"
	"github.com/paiban/paiban/internal/cpsat"
	"github.com/paiban/paiban/internal/normalize"
	"github.com/paiban/paiban/pkg/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixture builds a NormalizedInputs with every map field initialized,
// mirroring internal/cpsat's own test fixture, so Build never dereferences
// a nil map.
func fixture(days []time.Time, members []*model.Employee, patterns []*model.ShiftPattern) *normalize.NormalizedInputs {
	ni := &normalize.NormalizedInputs{
		Days:                   days,
		Members:                members,
		MemberByID:             map[model.ID]*model.Employee{},
		Patterns:               patterns,
		PatternByID:            map[model.ID]*model.ShiftPattern{},
		WorkMinutes:            map[model.ID]int{},
		DayGroupByID:           map[model.ID]*model.DayGroup{},
		AllowedWeekdaySet:      map[model.ID]*model.WeekdaySet{},
		LeaveDates:             map[model.ID]map[time.Time]bool{},
		PaidLeaveDates:         map[model.ID]map[time.Time]bool{},
		DesignatedHolidayDates: map[time.Time]bool{},
		OtherAssignmentDates:   map[model.ID]map[time.Time]bool{},
		PreAssignedDays:        map[normalize.MemberDate]model.ID{},
		SpecificDateReqs:       map[normalize.DatePattern]*model.SpecificDateRequirement{},
		SpecificTimeSlotReqs:   map[time.Time][]*model.SpecificTimeSlotRequirement{},
		DatesWithSpecificReqs:  map[time.Time]bool{},
		DayDifficulty:          map[time.Time]int{},
		Settings:               model.DefaultSolverSettings(1),
	}
	for _, m := range members {
		ni.MemberByID[m.ID] = m
	}
	for _, p := range patterns {
		ni.PatternByID[p.ID] = p
		ni.WorkMinutes[p.ID] = p.WorkMinutes()
	}
	for _, d := range days {
		ni.DayDifficulty[d] = 0
	}
	ni.NumPossibleShifts = map[model.ID]int{}
	for _, m := range members {
		ni.NumPossibleShifts[m.ID] = len(days) * len(patterns)
	}
	return ni
}

// allTrueResult fabricates a SolveResult that reports every boolean
// variable as assigned and every integer slack variable at zero, standing
// in for a solved response without invoking the native CP-SAT solver
// (internal/cpsat's own tests avoid that call for the same reason — see
// internal/cpsat/model_test.go).
func allTrueResult() *cpsat.SolveResult {
	return &cpsat.SolveResult{
		Status:         cpsat.StatusOptimal,
		ObjectiveValue: 0,
		BoolValue:      func(v cpmodel.BoolVar) bool { return true },
		IntValue:       func(v cpmodel.IntVar) int64 { return 0 },
	}
}

// TestExtractAssignments_TrivialScenario mirrors the trivial-feasibility
// scenario: one member, one pattern, a five-day range. Every assignment
// variable reads true, so extractAssignments should return one assignment
// per day plus nothing else.
func TestExtractAssignments_TrivialScenario(t *testing.T) {
	pattern := &model.ShiftPattern{BaseEntity: model.BaseEntity{ID: 1}, StartMinute: 9 * 60, DurationMin: 8 * 60, BreakMinutes: 60, MinHeadcount: 1}
	member := &model.Employee{BaseEntity: model.BaseEntity{ID: 1}, MaxHoursPerDay: 8}
	days := []time.Time{day(2026, 1, 5), day(2026, 1, 6), day(2026, 1, 7), day(2026, 1, 8), day(2026, 1, 9)}

	ni := fixture(days, []*model.Employee{member}, []*model.ShiftPattern{pattern})
	cov := coverage.Build(ni, 30)
	m, err := cpsat.Build(ni, cov, 8*60, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	result := allTrueResult()
	assignments := extractAssignments(ni, m.Vars, result, 1)
	if len(assignments) != len(days) {
		t.Fatalf("expected %d assignments, got %d", len(days), len(assignments))
	}
	for _, a := range assignments {
		if a.EmployeeID != member.ID || a.PatternID != pattern.ID {
			t.Errorf("unexpected assignment: %+v", a)
		}
	}
}

// TestExtractAssignments_IncludesPreAssignedDays checks that a fixed
// assignment is carried into the output even when no free decision
// variable backs it.
func TestExtractAssignments_IncludesPreAssignedDays(t *testing.T) {
	ni := fixture(nil, nil, nil)
	fixedDate := day(2026, 2, 1)
	ni.PreAssignedDays[normalize.MemberDate{Member: 7, Date: fixedDate}] = 3

	assignments := extractAssignments(ni, &cpsat.Vars{}, allTrueResult(), 9)
	if len(assignments) != 1 {
		t.Fatalf("expected exactly one pre-assigned day, got %d", len(assignments))
	}
	a := assignments[0]
	if a.EmployeeID != 7 || a.PatternID != 3 || !a.Date.Equal(fixedDate) || a.DepartmentID != 9 {
		t.Errorf("unexpected pre-assigned output: %+v", a)
	}
}

// TestComputeStatistics_FillRate checks the fill-rate arithmetic against a
// fully-covered fixture, mirroring the trivial-feasibility scenario's
// expectation of no shortfall.
func TestComputeStatistics_FillRate(t *testing.T) {
	pattern := &model.ShiftPattern{BaseEntity: model.BaseEntity{ID: 1}, StartMinute: 9 * 60, DurationMin: 8 * 60, MinHeadcount: 1}
	member := &model.Employee{BaseEntity: model.BaseEntity{ID: 1}, MaxHoursPerDay: 8}
	days := []time.Time{day(2026, 3, 2), day(2026, 3, 3), day(2026, 3, 4), day(2026, 3, 5)}

	ni := fixture(days, []*model.Employee{member}, []*model.ShiftPattern{pattern})
	cov := coverage.Build(ni, 30)
	m, err := cpsat.Build(ni, cov, 480, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	result := allTrueResult()
	assignments := extractAssignments(ni, m.Vars, result, 1)
	stats := computeStatistics(ni, cov, m.Vars, result, assignments)

	if stats.TotalSlots != len(cov.Variable) {
		t.Errorf("expected TotalSlots %d, got %d", len(cov.Variable), stats.TotalSlots)
	}
	if stats.FillRate != 100 {
		t.Errorf("expected a fully-covered fixture to report FillRate 100, got %v", stats.FillRate)
	}
}

// TestPersist_RejectsUnsuccessfulResult checks that Persist refuses to
// commit a failed solve's (empty) assignment set.
func TestPersist_RejectsUnsuccessfulResult(t *testing.T) {
	result := &Result{Success: false}
	if err := Persist(nil, nil, 1, day(2026, 1, 1), day(2026, 2, 1), result); err == nil {
		t.Fatal("expected an error when persisting an unsuccessful result")
	}
}
