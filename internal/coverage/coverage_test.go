package coverage

import (
	"testing"
	"time"

	"github.com/paiban/paiban/internal/normalize"
	"github.com/paiban/paiban/pkg/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_SimpleSingleDayPattern(t *testing.T) {
	pattern := &model.ShiftPattern{BaseEntity: model.BaseEntity{ID: 1}, StartMinute: 9 * 60, DurationMin: 4 * 60}
	member := &model.Employee{BaseEntity: model.BaseEntity{ID: 1}}

	ni := &normalize.NormalizedInputs{
		Days:                  []time.Time{day(2026, 1, 1)},
		Members:               []*model.Employee{member},
		Patterns:              []*model.ShiftPattern{pattern},
		DayGroupByID:          map[model.ID]*model.DayGroup{},
		AllowedWeekdaySet:     map[model.ID]*model.WeekdaySet{},
		LeaveDates:            map[model.ID]map[time.Time]bool{},
		PaidLeaveDates:        map[model.ID]map[time.Time]bool{},
		DesignatedHolidayDates: map[time.Time]bool{},
		OtherAssignmentDates:  map[model.ID]map[time.Time]bool{},
		PreAssignedDays:       map[normalize.MemberDate]model.ID{},
		SpecificDateReqs:      map[normalize.DatePattern]*model.SpecificDateRequirement{},
		SpecificTimeSlotReqs:  map[time.Time][]*model.SpecificTimeSlotRequirement{},
		DatesWithSpecificReqs: map[time.Time]bool{},
		TimeSlotRequirements:  nil,
	}

	cov := Build(ni, 30)

	// A 4h shift at 30-minute slots yields 8 slots, all with one candidate.
	count := 0
	for _, cands := range cov.Variable {
		count += len(cands)
	}
	if count != 8 {
		t.Errorf("expected 8 candidate slot entries, got %d", count)
	}
}

func TestBuild_BlockedMemberYieldsNoCandidate(t *testing.T) {
	pattern := &model.ShiftPattern{BaseEntity: model.BaseEntity{ID: 1}, StartMinute: 0, DurationMin: 60}
	member := &model.Employee{BaseEntity: model.BaseEntity{ID: 1}}
	d := day(2026, 1, 1)

	ni := &normalize.NormalizedInputs{
		Days:                  []time.Time{d},
		Members:               []*model.Employee{member},
		Patterns:              []*model.ShiftPattern{pattern},
		DayGroupByID:          map[model.ID]*model.DayGroup{},
		AllowedWeekdaySet:     map[model.ID]*model.WeekdaySet{},
		LeaveDates:            map[model.ID]map[time.Time]bool{1: {d: true}},
		PaidLeaveDates:        map[model.ID]map[time.Time]bool{},
		DesignatedHolidayDates: map[time.Time]bool{},
		OtherAssignmentDates:  map[model.ID]map[time.Time]bool{},
		PreAssignedDays:       map[normalize.MemberDate]model.ID{},
		SpecificDateReqs:      map[normalize.DatePattern]*model.SpecificDateRequirement{},
		SpecificTimeSlotReqs:  map[time.Time][]*model.SpecificTimeSlotRequirement{},
		DatesWithSpecificReqs: map[time.Time]bool{},
	}

	cov := Build(ni, 30)
	for _, cands := range cov.Variable {
		if len(cands) != 0 {
			t.Fatalf("member on leave should never be a candidate, got %v", cands)
		}
	}
}

func TestBuild_CrossesMidnight(t *testing.T) {
	pattern := &model.ShiftPattern{BaseEntity: model.BaseEntity{ID: 1}, StartMinute: 23 * 60, DurationMin: 120, IsNightShift: true}
	member := &model.Employee{BaseEntity: model.BaseEntity{ID: 1}}
	d := day(2026, 1, 1)

	ni := &normalize.NormalizedInputs{
		Days:                  []time.Time{d},
		Members:               []*model.Employee{member},
		Patterns:              []*model.ShiftPattern{pattern},
		DayGroupByID:          map[model.ID]*model.DayGroup{},
		AllowedWeekdaySet:     map[model.ID]*model.WeekdaySet{},
		LeaveDates:            map[model.ID]map[time.Time]bool{},
		PaidLeaveDates:        map[model.ID]map[time.Time]bool{},
		DesignatedHolidayDates: map[time.Time]bool{},
		OtherAssignmentDates:  map[model.ID]map[time.Time]bool{},
		PreAssignedDays:       map[normalize.MemberDate]model.ID{},
		SpecificDateReqs:      map[normalize.DatePattern]*model.SpecificDateRequirement{},
		SpecificTimeSlotReqs:  map[time.Time][]*model.SpecificTimeSlotRequirement{},
		DatesWithSpecificReqs: map[time.Time]bool{},
	}

	cov := Build(ni, 30)
	nextDay := d.AddDate(0, 0, 1)
	found := false
	for s := range cov.Variable {
		if s.Date.Equal(nextDay) {
			found = true
		}
	}
	if !found {
		t.Error("a shift starting at 23:00 for 2h should produce slots on the next calendar date")
	}
}
