package cpsat

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// setObjective assembles the maximize expression: priority and difficulty
// rewards for covered slots, a preference bonus for members on their
// preferred pattern, a pairing bonus for linked members rostered together,
// minus every penalty-weighted slack/surplus variable. EnforceExactHolidays
// members have their work_day_surplus penalty multiplied by
// Settings.EnforceExactHolidaysMultiplier (DESIGN.md Q1).
func (m *Model) setObjective() {
	s := m.ni.Settings
	obj := cpmodel.NewLinearExpr()

	for slot, shortfall := range m.Vars.Shortfall {
		_ = slot
		obj.AddTerm(shortfall, int64(-s.ShortfallPenalty))
	}

	for _, viol := range m.Vars.UnavailableDayViolation {
		obj.AddTerm(viol, int64(-s.UnavailableDayPenalty))
	}

	for _, member := range m.ni.Members {
		weight := s.WorkDaySurplusPenalty
		if member.EnforceExactHolidays {
			weight *= s.EnforceExactHolidaysMultiplier
		}
		obj.AddTerm(m.Vars.WorkDaySurplus[member.ID], int64(-weight))

		if surpluses, ok := m.Vars.ConsecutiveSurplus[member.ID]; ok {
			for _, sv := range surpluses {
				obj.AddTerm(sv, int64(-s.ConsecutiveSurplusPenalty))
			}
		}
		if sv, ok := m.Vars.SalaryShortfall[member.ID]; ok {
			obj.AddTerm(sv, int64(-s.SalaryShortfallPenalty))
		}
		if sv, ok := m.Vars.SalarySurplus[member.ID]; ok {
			obj.AddTerm(sv, int64(-s.SalarySurplusPenalty))
		}
		if av, ok := m.Vars.AbsDeviation[member.ID]; ok {
			obj.AddTerm(av, int64(-s.AbsDeviationPenalty))
		}

		// priorityReward is the per-candidate-shift reward from spec §4.3.3:
		// floor(10000/(num_possible_shifts(m)+1)) * (100 - priority_score(m)),
		// constant across every (d,p) this member might take.
		priorityReward := int64(10000/(m.ni.NumPossibleShifts[member.ID]+1)) * int64(100-member.PriorityScore)

		for t, bv := range m.Vars.Assign {
			if t.Member != member.ID {
				continue
			}
			difficultyBonus := int64(m.ni.DayDifficulty[t.Date] * s.DifficultyBonusWeight)
			preferenceBonus := int64(100-member.PreferencePriority(t.Pattern)) * int64(s.PreferenceBonusWeight)
			obj.AddTerm(bv, priorityReward+difficultyBonus+preferenceBonus)
		}
	}

	for _, viol := range m.Vars.IncompatibleViolation {
		obj.AddTerm(viol, int64(-s.IncompatiblePenalty))
	}
	for _, pair := range m.Vars.Paired {
		obj.AddTerm(pair, int64(s.PairingBonusWeight))
	}

	m.Builder.Maximize(obj)
}
