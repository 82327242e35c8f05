// Package normalize implements the Input Normalizer: it loads a
// department's raw records for a date range, validates them, and produces
// the indexed form the rest of the solve pipeline consumes.
package normalize

import (
	"context"
	"fmt"
	"time"

	"github.com/paiban/paiban/pkg/errors"
	"github.com/paiban/paiban/pkg/model"
)

// MemberDate keys every per-member-per-day lookup in the normalized
// inputs. Dates are always normalized to UTC midnight before use as a map
// key (see Normalize), so plain equality is safe here.
type MemberDate struct {
	Member model.ID
	Date   time.Time
}

// DatePattern keys a SpecificDateRequirement by the exact (date, pattern)
// pair it bounds (spec §3/§4.3.1 H8) — a department can carry a different
// headcount band per pattern on the same date.
type DatePattern struct {
	Date    time.Time
	Pattern model.ID
}

// RawRecords is everything the repository layer can hand back for one
// department and date range, before any indexing or validation.
type RawRecords struct {
	Department             *model.Department
	Employees               []*model.Employee
	Patterns                []*model.ShiftPattern
	DayGroups               []*model.DayGroup
	TimeSlotRequirements    []*model.TimeSlotRequirement
	SpecificDateRequirements []*model.SpecificDateRequirement
	SpecificTimeSlotRequirements []*model.SpecificTimeSlotRequirement
	LeaveRequests           []*model.LeaveRequest
	DesignatedHolidays      []*model.DesignatedHoliday
	PaidLeaves              []*model.PaidLeave
	FixedAssignments        []*model.FixedAssignment
	OtherAssignments        []*model.OtherAssignment
	RelationshipGroups      []*model.RelationshipGroup
	Settings                *model.SolverSettings
}

// Loader is the persistence collaborator the normalizer depends on.
type Loader interface {
	LoadDepartmentInputs(ctx context.Context, deptID model.ID, start, end time.Time) (*RawRecords, error)
}

// NormalizedInputs is the validated, indexed form the rest of the pipeline
// (coverage builder, model builder, diagnostics) consumes.
type NormalizedInputs struct {
	Department model.Department
	Start, End time.Time
	Days       []time.Time

	Members  []*model.Employee
	MemberByID map[model.ID]*model.Employee

	Patterns      []*model.ShiftPattern
	PatternByID   map[model.ID]*model.ShiftPattern
	WorkMinutes   map[model.ID]int

	DayGroupByID map[model.ID]*model.DayGroup

	// AllowedWeekdaySet[member] is nil when unrestricted.
	AllowedWeekdaySet map[model.ID]*model.WeekdaySet

	// LeaveDates[member] is the set of dates blocked by an approved
	// LeaveRequest. PaidLeave dates and department-wide DesignatedHoliday
	// dates are kept in the two maps below; IsBlocked consults all three.
	LeaveDates map[model.ID]map[time.Time]bool
	PaidLeaveDates map[model.ID]map[time.Time]bool
	DesignatedHolidayDates map[time.Time]bool

	FixedAssignments  []*model.FixedAssignment
	OtherAssignmentDates map[model.ID]map[time.Time]bool

	// PreAssignedDays maps (member,date) to the pattern a FixedAssignment
	// pins it to — the coverage builder and model builder both need to
	// skip these when enumerating free decision variables.
	PreAssignedDays map[MemberDate]model.ID

	SpecificDateReqs     map[DatePattern]*model.SpecificDateRequirement
	SpecificTimeSlotReqs map[time.Time][]*model.SpecificTimeSlotRequirement
	// DatesWithSpecificReqs is the exclusive switch: a date present here
	// sources its slot coverage from SpecificTimeSlotReqs only, never from
	// TimeSlotRequirement.
	DatesWithSpecificReqs map[time.Time]bool

	TimeSlotRequirements []*model.TimeSlotRequirement

	RelationshipGroups []*model.RelationshipGroup

	// DayDifficulty[date] counts approved LeaveRequests landing on that date,
	// used to weight the difficulty_bonus term of the objective.
	DayDifficulty map[time.Time]int

	// NumPossibleShifts[member] counts the (day, pattern) combinations not
	// ruled out by leave/holiday/weekday blocking or the preference
	// allowlist — the denominator of the priority_reward formula (spec
	// §4.3.3).
	NumPossibleShifts map[model.ID]int

	Settings *model.SolverSettings
}

// Normalize loads and validates the inputs for one department/date-range
// solve.
func Normalize(ctx context.Context, loader Loader, deptID model.ID, start, end time.Time) (*NormalizedInputs, error) {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return nil, errors.InvalidInput("date_range", "end date must not be before start date")
	}

	raw, err := loader.LoadDepartmentInputs(ctx, deptID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading department inputs: %w", err)
	}
	if raw.Department == nil {
		return nil, errors.InvalidInput("department_id", "department not found")
	}

	ni := &NormalizedInputs{
		Department:            *raw.Department,
		Start:                 start,
		End:                   end,
		Members:               raw.Employees,
		MemberByID:            map[model.ID]*model.Employee{},
		Patterns:              raw.Patterns,
		PatternByID:           map[model.ID]*model.ShiftPattern{},
		WorkMinutes:           map[model.ID]int{},
		DayGroupByID:          map[model.ID]*model.DayGroup{},
		AllowedWeekdaySet:     map[model.ID]*model.WeekdaySet{},
		LeaveDates:            map[model.ID]map[time.Time]bool{},
		PaidLeaveDates:        map[model.ID]map[time.Time]bool{},
		DesignatedHolidayDates: map[time.Time]bool{},
		FixedAssignments:      raw.FixedAssignments,
		OtherAssignmentDates:  map[model.ID]map[time.Time]bool{},
		PreAssignedDays:       map[MemberDate]model.ID{},
		SpecificDateReqs:      map[DatePattern]*model.SpecificDateRequirement{},
		SpecificTimeSlotReqs:  map[time.Time][]*model.SpecificTimeSlotRequirement{},
		DatesWithSpecificReqs: map[time.Time]bool{},
		TimeSlotRequirements:  raw.TimeSlotRequirements,
		RelationshipGroups:    raw.RelationshipGroups,
		DayDifficulty:         map[time.Time]int{},
		Settings:              raw.Settings,
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ni.Days = append(ni.Days, d)
	}

	for _, g := range raw.DayGroups {
		ni.DayGroupByID[g.ID] = g
	}
	for _, m := range raw.Employees {
		ni.MemberByID[m.ID] = m
		if len(m.AllowedDayGroups) > 0 {
			var set model.WeekdaySet
			for _, gid := range m.AllowedDayGroups {
				if g, ok := ni.DayGroupByID[gid]; ok {
					set |= g.Weekdays
				} else {
					return nil, errors.InvalidInput("allowed_day_groups",
						fmt.Sprintf("employee %d references unknown day group %d", m.ID, gid))
				}
			}
			ni.AllowedWeekdaySet[m.ID] = &set
		}
	}
	for _, p := range raw.Patterns {
		ni.PatternByID[p.ID] = p
		ni.WorkMinutes[p.ID] = p.WorkMinutes()
	}

	for _, lr := range raw.LeaveRequests {
		d := day(lr.Date)
		if ni.LeaveDates[lr.EmployeeID] == nil {
			ni.LeaveDates[lr.EmployeeID] = map[time.Time]bool{}
		}
		ni.LeaveDates[lr.EmployeeID][d] = true
	}
	for _, pl := range raw.PaidLeaves {
		if ni.PaidLeaveDates[pl.EmployeeID] == nil {
			ni.PaidLeaveDates[pl.EmployeeID] = map[time.Time]bool{}
		}
		ni.PaidLeaveDates[pl.EmployeeID][day(pl.Date)] = true
	}
	for _, h := range raw.DesignatedHolidays {
		ni.DesignatedHolidayDates[day(h.Date)] = true
	}
	for _, oa := range raw.OtherAssignments {
		if ni.OtherAssignmentDates[oa.EmployeeID] == nil {
			ni.OtherAssignmentDates[oa.EmployeeID] = map[time.Time]bool{}
		}
		ni.OtherAssignmentDates[oa.EmployeeID][day(oa.Date)] = true
	}
	for _, fa := range raw.FixedAssignments {
		if _, ok := ni.PatternByID[fa.PatternID]; !ok {
			return nil, errors.InvalidInput("fixed_assignment",
				fmt.Sprintf("pattern %d is not in this department", fa.PatternID))
		}
		ni.PreAssignedDays[MemberDate{fa.EmployeeID, day(fa.Date)}] = fa.PatternID
	}

	for _, sdr := range raw.SpecificDateRequirements {
		if _, ok := ni.PatternByID[sdr.PatternID]; !ok {
			return nil, errors.InvalidInput("specific_date_requirement",
				fmt.Sprintf("pattern %d is not in this department", sdr.PatternID))
		}
		ni.SpecificDateReqs[DatePattern{Date: day(sdr.Date), Pattern: sdr.PatternID}] = sdr
	}
	for _, str := range raw.SpecificTimeSlotRequirements {
		d := day(str.Date)
		ni.SpecificTimeSlotReqs[d] = append(ni.SpecificTimeSlotReqs[d], str)
		ni.DatesWithSpecificReqs[d] = true
	}

	ni.computeDifficulty(raw.LeaveRequests)
	ni.computeNumPossibleShifts()

	if ni.Settings == nil {
		ni.Settings = model.DefaultSolverSettings(deptID)
	}

	return ni, nil
}

// computeDifficulty scores each day by the count of approved LeaveRequests
// falling on it (glossary: Difficulty) — a day with more people out is
// "harder", and whoever still works it earns a bigger difficulty_bonus in
// the objective (spec §4.1, §4.3.3).
func (ni *NormalizedInputs) computeDifficulty(leaveRequests []*model.LeaveRequest) {
	for _, d := range ni.Days {
		ni.DayDifficulty[d] = 0
	}
	for _, lr := range leaveRequests {
		d := day(lr.Date)
		if _, ok := ni.DayDifficulty[d]; ok {
			ni.DayDifficulty[d]++
		}
	}
}

// computeNumPossibleShifts counts, per member, the (day, pattern)
// combinations not ruled out by leave/holiday/weekday blocking or the
// preference allowlist (spec §4.1: "num_possible_shifts(m) counts days not
// blocked by leave/weekday and patterns not blocked by preference filter").
func (ni *NormalizedInputs) computeNumPossibleShifts() {
	ni.NumPossibleShifts = map[model.ID]int{}
	for _, member := range ni.Members {
		days := 0
		for _, d := range ni.Days {
			if ni.IsBlocked(member.ID, d) {
				continue
			}
			if set := ni.AllowedWeekdaySet[member.ID]; set != nil && !set.Has(d.Weekday()) {
				continue
			}
			days++
		}
		patterns := 0
		for _, p := range ni.Patterns {
			if member.AllowsPattern(p.ID) {
				patterns++
			}
		}
		ni.NumPossibleShifts[member.ID] = days * patterns
	}
}

// IsBlocked reports whether member m cannot be assigned anything at all on
// date d because of leave, paid leave, a designated holiday, or an other
// assignment (H3/H5).
func (ni *NormalizedInputs) IsBlocked(m model.ID, date time.Time) bool {
	d := day(date)
	if ni.DesignatedHolidayDates[d] {
		return true
	}
	if ni.LeaveDates[m] != nil && ni.LeaveDates[m][d] {
		return true
	}
	if ni.PaidLeaveDates[m] != nil && ni.PaidLeaveDates[m][d] {
		return true
	}
	if ni.OtherAssignmentDates[m] != nil && ni.OtherAssignmentDates[m][d] {
		return true
	}
	return false
}

// PreAssignedPattern returns the pattern member m is fixed to on date d via
// a FixedAssignment, and whether one exists.
func (ni *NormalizedInputs) PreAssignedPattern(m model.ID, d time.Time) (model.ID, bool) {
	p, ok := ni.PreAssignedDays[MemberDate{m, day(d)}]
	return p, ok
}

// day canonicalizes a date to UTC midnight so it can be used as a
// comparable map key regardless of the location/monotonic reading it
// arrived with.
func day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
