// Package cpsat is the Model Builder and Solver Driver: it turns slot
// coverage and normalized inputs into a CP-SAT model, solves it within a
// wall-clock budget, and exposes the solved boolean values back out.
package cpsat

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/paiban/internal/coverage"
	"github.com/paiban/paiban/internal/normalize"
	"github.com/paiban/paiban/pkg/model"
)

// Triple is one (member, pattern, date) decision variable key.
type Triple struct {
	Member  model.ID
	Pattern model.ID
	Date    time.Time
}

// PairKey identifies a pairing-bonus auxiliary variable for two members
// sharing a (date, pattern) slot.
type PairKey struct {
	MemberA, MemberB model.ID
	Pattern          model.ID
	Date             time.Time
}

// GroupSlotKey identifies an incompatible_violation slack: one per
// (RelationshipGroup, slot) pair (spec §4.3.2), counting how many members
// of the group beyond the first simultaneously cover that slot.
type GroupSlotKey struct {
	Group model.ID
	Slot  coverage.Slot
}

// Vars holds every variable the model builder creates, so the diagnostic
// extractor and the objective assembly can both walk them by name.
type Vars struct {
	Assign map[Triple]cpmodel.BoolVar

	// Indexes for hard-constraint assembly.
	ByMemberDay    map[normalize.MemberDate][]cpmodel.BoolVar
	ByPatternDate  map[model.ID]map[time.Time][]cpmodel.BoolVar
	BySlot         map[coverage.Slot][]cpmodel.BoolVar

	// Soft-constraint slack/surplus variables, named exactly as the
	// objective's penalty table names them.
	Shortfall              map[coverage.Slot]cpmodel.IntVar
	UnavailableDayViolation map[normalize.MemberDate]cpmodel.BoolVar
	IncompatibleViolation  map[GroupSlotKey]cpmodel.IntVar
	WorkDaySurplus         map[model.ID]cpmodel.IntVar
	ConsecutiveSurplus     map[model.ID][]cpmodel.IntVar
	TotalEarnings          map[model.ID]cpmodel.IntVar
	SalaryShortfall        map[model.ID]cpmodel.IntVar
	SalarySurplus          map[model.ID]cpmodel.IntVar
	AbsDeviation           map[model.ID]cpmodel.IntVar

	Paired map[PairKey]cpmodel.BoolVar
}

func newVars() *Vars {
	return &Vars{
		Assign:                  map[Triple]cpmodel.BoolVar{},
		ByMemberDay:             map[normalize.MemberDate][]cpmodel.BoolVar{},
		ByPatternDate:           map[model.ID]map[time.Time][]cpmodel.BoolVar{},
		BySlot:                  map[coverage.Slot][]cpmodel.BoolVar{},
		Shortfall:               map[coverage.Slot]cpmodel.IntVar{},
		UnavailableDayViolation: map[normalize.MemberDate]cpmodel.BoolVar{},
		IncompatibleViolation:   map[GroupSlotKey]cpmodel.IntVar{},
		WorkDaySurplus:          map[model.ID]cpmodel.IntVar{},
		ConsecutiveSurplus:      map[model.ID][]cpmodel.IntVar{},
		TotalEarnings:           map[model.ID]cpmodel.IntVar{},
		SalaryShortfall:         map[model.ID]cpmodel.IntVar{},
		SalarySurplus:           map[model.ID]cpmodel.IntVar{},
		AbsDeviation:            map[model.ID]cpmodel.IntVar{},
		Paired:                  map[PairKey]cpmodel.BoolVar{},
	}
}
