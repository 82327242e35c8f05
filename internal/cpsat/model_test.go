package cpsat

import (
	"testing"
	"time"

	"github.com/paiban/paiban/internal/coverage"
	"github.com/paiban/paiban/internal/normalize"
	"github.com/paiban/paiban/pkg/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// minimalInputs builds a NormalizedInputs with every map field initialized,
// mirroring the fixture shape internal/coverage's tests use, so Build never
// dereferences a nil map.
func minimalInputs(days []time.Time, members []*model.Employee, patterns []*model.ShiftPattern) *normalize.NormalizedInputs {
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

// TestBuild_TrivialFeasibility mirrors spec scenario S1: one member, one
// pattern, a five-day range, no exceptions. It only asserts on the shape
// of the compiled model (one assignment variable per member/day, exactly
// one candidate in each member/day index entry) since actually driving CP-SAT needs the
// underlying OR-Tools shared library this test environment doesn't link.
func TestBuild_TrivialFeasibility(t *testing.T) {
	pattern := &model.ShiftPattern{BaseEntity: model.BaseEntity{ID: 1}, StartMinute: 9 * 60, DurationMin: 8 * 60, BreakMinutes: 60, MinHeadcount: 1}
	member := &model.Employee{BaseEntity: model.BaseEntity{ID: 1}, MaxHoursPerDay: 8}
	days := []time.Time{day(2026, 1, 5), day(2026, 1, 6), day(2026, 1, 7), day(2026, 1, 8), day(2026, 1, 9)}

	ni := minimalInputs(days, []*model.Employee{member}, []*model.ShiftPattern{pattern})
	cov := coverage.Build(ni, 30)

	m, err := Build(ni, cov, 8*60, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(m.Vars.Assign) != len(days) {
		t.Errorf("expected %d assignment variables (one member x one pattern x 5 days), got %d", len(days), len(m.Vars.Assign))
	}
	for _, d := range days {
		md := normalize.MemberDate{Member: member.ID, Date: d}
		if len(m.Vars.ByMemberDay[md]) != 1 {
			t.Errorf("expected exactly one candidate variable for %s, got %d", d, len(m.Vars.ByMemberDay[md]))
		}
	}
}

// TestBuild_NilInputsRejected exercises the programmer-error path (spec §7:
// a model-construction bug should abort, not silently proceed).
func TestBuild_NilInputsRejected(t *testing.T) {
	if _, err := Build(nil, nil, 480, nil); err == nil {
		t.Fatal("expected an error when normalized inputs/coverage are nil")
	}
}

// TestBuild_SalaryBandOnlyAppliesToBoundedHourlyMembers checks the slack
// variables spec §4.3.2's salary band creates are scoped the way the spec
// describes: hourly members carrying a Min/MaxMonthlySalary, never
// salaried members and never an hourly member with neither bound set.
func TestBuild_SalaryBandOnlyAppliesToBoundedHourlyMembers(t *testing.T) {
	minSalary := 1000.0
	bounded := &model.Employee{
		BaseEntity:     model.BaseEntity{ID: 1},
		Kind:           model.KindHourly,
		Hourly:         &model.HourlyTerms{WageRate: 20, MinMonthlySalary: &minSalary},
		MaxHoursPerDay: 8,
	}
	unbounded := &model.Employee{
		BaseEntity:     model.BaseEntity{ID: 2},
		Kind:           model.KindHourly,
		Hourly:         &model.HourlyTerms{WageRate: 20},
		MaxHoursPerDay: 8,
	}
	monthlySalary := 4000.0
	salaried := &model.Employee{
		BaseEntity:     model.BaseEntity{ID: 3},
		Kind:           model.KindSalaried,
		Salaried:       &model.SalariedTerms{MonthlySalary: monthlySalary},
		MaxHoursPerDay: 8,
	}
	pattern := &model.ShiftPattern{BaseEntity: model.BaseEntity{ID: 1}, StartMinute: 9 * 60, DurationMin: 8 * 60, MinHeadcount: 1}
	days := []time.Time{day(2026, 1, 5)}
	members := []*model.Employee{bounded, unbounded, salaried}

	ni := minimalInputs(days, members, []*model.ShiftPattern{pattern})
	cov := coverage.Build(ni, 30)
	m, err := Build(ni, cov, 480, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if _, ok := m.Vars.TotalEarnings[bounded.ID]; !ok {
		t.Error("bounded hourly member should get a total_earnings variable")
	}
	if _, ok := m.Vars.SalaryShortfall[bounded.ID]; !ok {
		t.Error("bounded hourly member should get a salary_shortfall slack")
	}
	if _, ok := m.Vars.SalarySurplus[bounded.ID]; ok {
		t.Error("member with no MaxMonthlySalary should not get a salary_surplus slack")
	}
	if _, ok := m.Vars.TotalEarnings[unbounded.ID]; ok {
		t.Error("hourly member with neither salary bound set should not get a total_earnings variable")
	}
	if _, ok := m.Vars.TotalEarnings[salaried.ID]; ok {
		t.Error("a salaried member should never get a total_earnings variable")
	}
}
