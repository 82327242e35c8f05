package cpsat

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/paiban/internal/normalize"
	"github.com/paiban/paiban/pkg/model"
)

// bigBound is a generous upper bound for slack/surplus IntVars — CP-SAT
// needs a finite domain, and nothing in this model can realistically
// exceed a month's worth of minutes.
const bigBound = 100000

func (m *Model) createSoftVars() {
	for slot, min := range m.cov.MinHeadcount {
		if min <= 0 {
			continue
		}
		name := "shortfall_" + slot.Date.Format("20060102") + "_" + itoa(int64(slot.Index))
		m.Vars.Shortfall[slot] = m.Builder.NewIntVar(0, bigBound).WithName(name)
	}

	for _, member := range m.ni.Members {
		m.Vars.WorkDaySurplus[member.ID] = m.Builder.NewIntVar(0, bigBound).
			WithName("work_day_surplus_m" + itoa(int64(member.ID)))

		if !member.IsSalaried() && member.Hourly != nil &&
			(member.Hourly.MinMonthlySalary != nil || member.Hourly.MaxMonthlySalary != nil) {
			m.Vars.TotalEarnings[member.ID] = m.Builder.NewIntVar(0, 10_000_000).
				WithName("total_earnings_m" + itoa(int64(member.ID)))
			if member.Hourly.MinMonthlySalary != nil {
				m.Vars.SalaryShortfall[member.ID] = m.Builder.NewIntVar(0, bigBound).
					WithName("salary_shortfall_m" + itoa(int64(member.ID)))
			}
			if member.Hourly.MaxMonthlySalary != nil {
				m.Vars.SalarySurplus[member.ID] = m.Builder.NewIntVar(0, bigBound).
					WithName("salary_surplus_m" + itoa(int64(member.ID)))
			}
		}

		m.Vars.AbsDeviation[member.ID] = m.Builder.NewIntVar(0, bigBound).
			WithName("abs_deviation_m" + itoa(int64(member.ID)))

		if member.MaxConsecutiveWorkDays != nil && *member.MaxConsecutiveWorkDays > 0 {
			window := *member.MaxConsecutiveWorkDays + 1
			runs := len(m.ni.Days) - window + 1
			if runs < 1 {
				runs = 0
			}
			surpluses := make([]cpmodel.IntVar, runs)
			for i := 0; i < runs; i++ {
				surpluses[i] = m.Builder.NewIntVar(0, 1).
					WithName("consecutive_surplus_m" + itoa(int64(member.ID)) + "_" + itoa(int64(i)))
			}
			m.Vars.ConsecutiveSurplus[member.ID] = surpluses
		}
	}

	for md := range m.Vars.ByMemberDay {
		set := m.ni.AllowedWeekdaySet[md.Member]
		if set == nil || set.Has(md.Date.Weekday()) {
			continue
		}
		name := "unavailable_day_m" + itoa(int64(md.Member)) + "_" + md.Date.Format("20060102")
		m.Vars.UnavailableDayViolation[md] = m.Builder.NewBoolVar().WithName(name)
	}

	for _, g := range m.ni.RelationshipGroups {
		if g.Rule != model.RelationshipIncompatible {
			continue
		}
		inGroup := map[model.ID]bool{}
		for _, mem := range g.Members {
			inGroup[mem] = true
		}
		for slot, candidates := range m.cov.Variable {
			present := map[model.ID]bool{}
			for _, c := range candidates {
				if inGroup[c.Member] {
					present[c.Member] = true
				}
			}
			if len(present) < 2 {
				continue
			}
			key := GroupSlotKey{Group: g.ID, Slot: slot}
			name := "incompatible_g" + itoa(int64(g.ID)) + "_" + slot.Date.Format("20060102") + "_" + itoa(int64(slot.Index))
			m.Vars.IncompatibleViolation[key] = m.Builder.NewIntVar(0, int64(len(g.Members))).WithName(name)
		}
	}
}

// addShortfallLinking ties each slot's Shortfall slack to the gap between
// the required minimum headcount and what's actually covering it: covered
// + fixed + shortfall >= min. The objective's negative weight on shortfall
// drives it to zero whenever coverage can reach the minimum, while keeping
// the model feasible when it can't.
func (m *Model) addShortfallLinking() {
	count := 0
	for slot, min := range m.cov.MinHeadcount {
		if min <= 0 {
			continue
		}
		expr := cpmodel.NewLinearExpr()
		for _, bv := range m.Vars.BySlot[slot] {
			expr.Add(bv)
		}
		expr.AddTerm(m.Vars.Shortfall[slot], 1)
		fixed := int64(m.cov.FixedCount[slot])
		m.Builder.AddGreaterOrEqual(expr, cpmodel.NewConstant(int64(min)-fixed))
		count++
	}
	m.log.ConstraintBuilt("shortfall_linking", count)
}

// addUnavailableDayLinking ties unavailable_day_violation[m,d] to exactly
// whether member m is working at all on a date their weekday allowlist
// excludes (spec §4.3.2: violation=1 iff Σ_p x[m,d,p] ≥ 1). Unlike the
// pattern-preference allowlist (H6, hard), the weekday allowlist never
// blocks the assignment outright — it only costs UnavailableDayPenalty in
// the objective, so the solver can still use a disallowed-day worker when
// coverage has no cheaper option.
func (m *Model) addUnavailableDayLinking() {
	count := 0
	for md, viol := range m.Vars.UnavailableDayViolation {
		lits := m.Vars.ByMemberDay[md]
		if len(lits) == 0 {
			continue
		}
		working := anyAssigned(m.Builder, lits)
		m.Builder.AddImplication(working, viol)
		m.Builder.AddImplication(viol, working)
		count++
	}
	m.log.ConstraintBuilt("unavailable_day_linking", count)
}

// addAbsDeviationLinking ties each member's abs_deviation to the distance
// between N·work_days[m] and the department's total work-days across every
// member (spec §4.3.2), so the objective can reward evening out the
// workload: abs_deviation[m] >= |N*work_days[m] - total_work_days|, encoded
// as the two one-sided inequalities CP-SAT needs in place of an absolute
// value.
func (m *Model) addAbsDeviationLinking() {
	n := int64(len(m.ni.Members))
	if n == 0 {
		return
	}
	count := 0
	for _, member := range m.ni.Members {
		av, ok := m.Vars.AbsDeviation[member.ID]
		if !ok {
			continue
		}
		pos := cpmodel.NewLinearExpr()
		neg := cpmodel.NewLinearExpr()
		for t, bv := range m.Vars.Assign {
			if t.Member == member.ID {
				pos.AddTerm(bv, n-1)
				neg.AddTerm(bv, -(n - 1))
			} else {
				pos.AddTerm(bv, -1)
				neg.AddTerm(bv, 1)
			}
		}
		m.Builder.AddLessOrEqual(pos, av)
		m.Builder.AddLessOrEqual(neg, av)
		count++
	}
	m.log.ConstraintBuilt("abs_deviation_linking", count)
}

// addIncompatibleLinking ties each (group, slot) incompatible_violation to
// how many of the group's members cover that slot: Σ x's of group members
// covering slot ≤ 1 + violation (spec §4.3.2). A slot covered by only one
// group member never needs the slack to bind; two or more force it up.
func (m *Model) addIncompatibleLinking() {
	groupMembers := map[model.ID]map[model.ID]bool{}
	for _, g := range m.ni.RelationshipGroups {
		if g.Rule != model.RelationshipIncompatible {
			continue
		}
		set := map[model.ID]bool{}
		for _, mem := range g.Members {
			set[mem] = true
		}
		groupMembers[g.ID] = set
	}

	count := 0
	for key, viol := range m.Vars.IncompatibleViolation {
		inGroup := groupMembers[key.Group]
		expr := cpmodel.NewLinearExpr()
		for _, c := range m.cov.Variable[key.Slot] {
			if !inGroup[c.Member] {
				continue
			}
			t := Triple{Member: c.Member, Pattern: c.Pattern, Date: key.Slot.Date}
			if bv, ok := m.Vars.Assign[t]; ok {
				expr.Add(bv)
			}
		}
		rhs := cpmodel.NewLinearExpr()
		rhs.AddTerm(viol, 1)
		rhs.Add(cpmodel.NewConstant(1))
		m.Builder.AddLessOrEqual(expr, rhs)
		count++
	}
	m.log.ConstraintBuilt("incompatible_linking", count)
}

// anyAssigned returns a literal equal to the OR of the given candidate
// booleans. In the common case of a single pattern candidate for a
// member/day it degenerates to that literal itself; multi-pattern days get
// an auxiliary variable tied to the disjunction.
func anyAssigned(b *cpmodel.CpModelBuilder, lits []cpmodel.BoolVar) cpmodel.BoolVar {
	if len(lits) == 1 {
		return lits[0]
	}
	agg := b.NewBoolVar()
	terms := make([]cpmodel.Literal, 0, len(lits)+1)
	for _, l := range lits {
		terms = append(terms, l)
		b.AddImplication(l, agg)
	}
	terms = append(terms, agg.Not())
	b.AddBoolOr(terms...)
	return agg
}

// addWorkDaySurplusLinking ties work_day_surplus[m] to how far a member's
// total assigned days for the period exceed the days-off floor their
// MinMonthlyDaysOff implies. The x1000 multiplier for EnforceExactHolidays
// employees lives in the objective, not here (see DESIGN.md Q1: one-sided
// on purpose — it only discourages surplus work days, never rewards a
// shortfall of them).
func (m *Model) addWorkDaySurplusLinking() {
	count := 0
	totalDays := len(m.ni.Days)
	for _, member := range m.ni.Members {
		allowance := totalDays - member.MinMonthlyDaysOff
		if allowance < 0 {
			allowance = 0
		}
		expr := cpmodel.NewLinearExpr()
		for md, vars := range m.Vars.ByMemberDay {
			if md.Member != member.ID {
				continue
			}
			for _, bv := range vars {
				expr.Add(bv)
			}
		}
		rhs := cpmodel.NewLinearExpr()
		rhs.AddTerm(m.Vars.WorkDaySurplus[member.ID], 1)
		rhs.Add(cpmodel.NewConstant(int64(allowance)))
		m.Builder.AddLessOrEqual(expr, rhs)
		count++
	}
	m.log.ConstraintBuilt("work_day_surplus_linking", count)
}

// addConsecutiveSurplusLinking bounds, for every sliding window of
// MaxConsecutiveWorkDays+1 calendar days, how many of those days a member
// can work: Σ window ≤ k + surplus, with surplus ∈ {0,1} (spec §4.3.2). A
// member working all k+1 days of a window forces that window's surplus to
// 1, so a run longer than k consecutive days always costs at least one
// violation no matter where it starts.
func (m *Model) addConsecutiveSurplusLinking() {
	count := 0
	for _, member := range m.ni.Members {
		if member.MaxConsecutiveWorkDays == nil || *member.MaxConsecutiveWorkDays <= 0 {
			continue
		}
		k := *member.MaxConsecutiveWorkDays
		window := k + 1
		surpluses := m.Vars.ConsecutiveSurplus[member.ID]
		for i := 0; i+window <= len(m.ni.Days); i++ {
			if i >= len(surpluses) {
				break
			}
			expr := cpmodel.NewLinearExpr()
			for j := i; j < i+window; j++ {
				d := m.ni.Days[j]
				for _, bv := range m.Vars.ByMemberDay[normalize.MemberDate{Member: member.ID, Date: d}] {
					expr.Add(bv)
				}
			}
			rhs := cpmodel.NewLinearExpr()
			rhs.AddTerm(surpluses[i], 1)
			rhs.Add(cpmodel.NewConstant(int64(k)))
			m.Builder.AddLessOrEqual(expr, rhs)
			count++
		}
	}
	m.log.ConstraintBuilt("consecutive_surplus_linking", count)
}

// addSalaryBandLinking ties salary_shortfall/surplus for hourly members
// carrying a MinMonthlySalary/MaxMonthlySalary band to total_earnings[m],
// an explicit integer variable equal to
// Σ_{d,p} x[m,d,p]·floor(work_minutes[p]·hourly_wage/60) (spec §4.3.2).
// Salaried members are paid a flat MonthlySalary independent of assigned
// shifts (DESIGN.md Q3/ambient note), so they never get a band here.
func (m *Model) addSalaryBandLinking() {
	count := 0
	for _, member := range m.ni.Members {
		earnings, ok := m.Vars.TotalEarnings[member.ID]
		if !ok {
			continue
		}
		expr := cpmodel.NewLinearExpr()
		for t, bv := range m.Vars.Assign {
			if t.Member == member.ID {
				perShift := int64(float64(m.ni.WorkMinutes[t.Pattern]) * member.Hourly.WageRate / 60)
				expr.AddTerm(bv, perShift)
			}
		}
		// total_earnings == expr, expressed as the two one-sided bounds
		// this codebase uses in place of an explicit equality helper.
		m.Builder.AddLessOrEqual(expr, earnings)
		m.Builder.AddGreaterOrEqual(expr, earnings)

		if shortfall, ok := m.Vars.SalaryShortfall[member.ID]; ok {
			min := int64(*member.Hourly.MinMonthlySalary)
			lhs := cpmodel.NewLinearExpr()
			lhs.AddTerm(earnings, 1)
			lhs.AddTerm(shortfall, 1)
			m.Builder.AddGreaterOrEqual(lhs, cpmodel.NewConstant(min))
		}
		if surplus, ok := m.Vars.SalarySurplus[member.ID]; ok {
			max := int64(*member.Hourly.MaxMonthlySalary)
			rhs := cpmodel.NewLinearExpr()
			rhs.AddTerm(surplus, 1)
			rhs.Add(cpmodel.NewConstant(max))
			earningsExpr2 := cpmodel.NewLinearExpr()
			earningsExpr2.AddTerm(earnings, 1)
			m.Builder.AddLessOrEqual(earningsExpr2, rhs)
		}

		count++
	}
	m.log.ConstraintBuilt("salary_band_linking", count)
}

// addPairingBonusVars creates an AND-linked boolean for every member pair
// that both candidate-cover the same (date,pattern) slot in a "pairing"
// RelationshipGroup, bounded by the coverage builder's own candidate lists
// rather than the full member cross product — the blow-up cap SPEC_FULL.md
// calls for.
func (m *Model) addPairingBonusVars() {
	count := 0
	for _, g := range m.ni.RelationshipGroups {
		if g.Rule != model.RelationshipPairing {
			continue
		}
		for _, d := range m.ni.Days {
			for _, p := range m.ni.Patterns {
				present := map[model.ID]cpmodel.BoolVar{}
				for _, mem := range g.Members {
					if bv, ok := m.Vars.Assign[Triple{Member: mem, Pattern: p.ID, Date: d}]; ok {
						present[mem] = bv
					}
				}
				for i := 0; i < len(g.Members); i++ {
					for j := i + 1; j < len(g.Members); j++ {
						a, aok := present[g.Members[i]]
						b, bok := present[g.Members[j]]
						if !aok || !bok {
							continue
						}
						key := PairKey{MemberA: g.Members[i], MemberB: g.Members[j], Pattern: p.ID, Date: d}
						name := "paired_" + itoa(int64(key.MemberA)) + "_" + itoa(int64(key.MemberB)) + "_" + itoa(int64(p.ID)) + "_" + d.Format("20060102")
						pair := m.Builder.NewBoolVar().WithName(name)
						m.Builder.AddImplication(pair, a)
						m.Builder.AddImplication(pair, b)
						m.Builder.AddBoolOr(a.Not(), b.Not(), pair)
						m.Vars.Paired[key] = pair
						count++
					}
				}
			}
		}
	}
	m.log.ConstraintBuilt("pairing_bonus_vars", count)
}
