package cpsat

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/paiban/internal/coverage"
	"github.com/paiban/paiban/internal/normalize"
	"github.com/paiban/paiban/pkg/errors"
	"github.com/paiban/paiban/pkg/logger"
)

// Model is the compiled CP-SAT problem for one department/date-range solve:
// the variables plus the builder they live on, ready to hand to Drive.
type Model struct {
	Builder *cpmodel.CpModelBuilder
	Vars    *Vars

	ni  *normalize.NormalizedInputs
	cov *coverage.Coverage
	log *logger.SchedulerLogger
}

// Build assembles decision variables and every hard constraint (H1–H10)
// against the given normalized inputs and slot coverage, then wires the
// soft-constraint slacks and the objective.
//
// Candidate generation already excludes anything blocked by leave, a
// designated holiday, an other-assignment, or an unpermitted pattern
// (H3, H5, H6) — the coverage builder enforces those by omission. A
// disallowed weekday is not excluded there; it is priced through the
// unavailable-day slack instead. The hard-constraint assembly below only needs to cover
// H1, H2, H7, H8, H9, H10, plus the bookkeeping for fixed assignments (H4).
func Build(ni *normalize.NormalizedInputs, cov *coverage.Coverage, minRestMinutes int, log *logger.SchedulerLogger) (*Model, error) {
	if ni == nil || cov == nil {
		return nil, buildErr("model_builder", "normalized inputs and coverage must not be nil")
	}
	if log == nil {
		log = logger.NewSchedulerLogger()
	}
	b := cpmodel.NewCpModelBuilder()
	v := newVars()
	m := &Model{Builder: b, Vars: v, ni: ni, cov: cov, log: log}

	m.createAssignmentVars()
	if err := m.addH1OnePatternPerDay(); err != nil {
		return nil, err
	}
	m.addH2DailyWorkCap()
	m.addH7PatternHeadcountCap()
	m.addH8SpecificDateBounds()
	m.addH9MinimumRest(minRestMinutes)
	m.addH10SlotHeadcountBounds()

	m.createSoftVars()
	m.addShortfallLinking()
	m.addUnavailableDayLinking()
	m.addIncompatibleLinking()
	m.addWorkDaySurplusLinking()
	m.addConsecutiveSurplusLinking()
	m.addSalaryBandLinking()
	m.addAbsDeviationLinking()
	m.addPairingBonusVars()

	m.setObjective()

	return m, nil
}

func (m *Model) createAssignmentVars() {
	count := 0
	for slot, candidates := range m.cov.Variable {
		for _, c := range candidates {
			t := Triple{Member: c.Member, Pattern: c.Pattern, Date: slot.Date}
			if _, exists := m.Vars.Assign[t]; exists {
				continue
			}
			name := varName("x", t)
			bv := m.Builder.NewBoolVar().WithName(name)
			m.Vars.Assign[t] = bv
			count++

			md := normalize.MemberDate{Member: c.Member, Date: slot.Date}
			m.Vars.ByMemberDay[md] = append(m.Vars.ByMemberDay[md], bv)

			if m.Vars.ByPatternDate[c.Pattern] == nil {
				m.Vars.ByPatternDate[c.Pattern] = map[time.Time][]cpmodel.BoolVar{}
			}
			m.Vars.ByPatternDate[c.Pattern][slot.Date] = append(m.Vars.ByPatternDate[c.Pattern][slot.Date], bv)
		}
	}
	for slot, candidates := range m.cov.Variable {
		for _, c := range candidates {
			t := Triple{Member: c.Member, Pattern: c.Pattern, Date: slot.Date}
			m.Vars.BySlot[slot] = append(m.Vars.BySlot[slot], m.Vars.Assign[t])
		}
	}
	m.log.ConstraintBuilt("assignment_vars", count)
}

// addH1OnePatternPerDay: a member works at most one pattern on any day.
func (m *Model) addH1OnePatternPerDay() error {
	count := 0
	for _, vars := range m.Vars.ByMemberDay {
		if len(vars) < 2 {
			continue
		}
		m.Builder.AddAtMostOne(vars...)
		count++
	}
	m.log.ConstraintBuilt("H1_one_pattern_per_day", count)
	return nil
}

// addH2DailyWorkCap: a member's worked minutes on a day never exceed their
// MaxHoursPerDay.
func (m *Model) addH2DailyWorkCap() {
	count := 0
	for md := range m.Vars.ByMemberDay {
		member := m.ni.MemberByID[md.Member]
		if member == nil || member.MaxHoursPerDay <= 0 {
			continue
		}
		// Build the expression from the underlying (member,pattern,date)
		// triples rather than the flattened BoolVar slice, so each term can
		// carry its pattern's work-minute coefficient.
		expr := cpmodel.NewLinearExpr()
		for t, bv := range m.Vars.Assign {
			if t.Member != md.Member || !t.Date.Equal(md.Date) {
				continue
			}
			minutes := m.ni.WorkMinutes[t.Pattern]
			expr.AddTerm(bv, int64(minutes))
		}
		m.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(int64(member.MaxHoursPerDay*60)))
		count++
	}
	m.log.ConstraintBuilt("H2_daily_work_cap", count)
}

// addH7PatternHeadcountCap: a pattern's own MaxHeadcount bounds how many
// members can run it on the same day, independent of slot-level bounds.
func (m *Model) addH7PatternHeadcountCap() {
	count := 0
	for _, p := range m.ni.Patterns {
		if p.MaxHeadcount == nil {
			continue
		}
		for _, vars := range m.Vars.ByPatternDate[p.ID] {
			expr := cpmodel.NewLinearExpr()
			for _, bv := range vars {
				expr.Add(bv)
			}
			m.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(int64(*p.MaxHeadcount)))
			count++
		}
	}
	m.log.ConstraintBuilt("H7_pattern_headcount_cap", count)
}

// addH8SpecificDateBounds: a SpecificDateRequirement bounds the headcount
// assigned to its one named pattern on its one date, on top of whatever
// slot-level bound is in force (H10).
func (m *Model) addH8SpecificDateBounds() {
	count := 0
	for key, req := range m.ni.SpecificDateReqs {
		expr := cpmodel.NewLinearExpr()
		fixed := int64(0)
		for t, bv := range m.Vars.Assign {
			if t.Date.Equal(key.Date) && t.Pattern == key.Pattern {
				expr.Add(bv)
			}
		}
		for md, patternID := range m.ni.PreAssignedDays {
			if md.Date.Equal(key.Date) && patternID == key.Pattern {
				fixed++
			}
		}
		lower := int64(req.MinHeadcount) - fixed
		if lower > 0 {
			m.Builder.AddGreaterOrEqual(expr, cpmodel.NewConstant(lower))
		}
		if req.MaxHeadcount != nil {
			upper := int64(*req.MaxHeadcount) - fixed
			m.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(upper))
		}
		count++
	}
	m.log.ConstraintBuilt("H8_specific_date_bounds", count)
}

// addH9MinimumRest forbids any two patterns on consecutive calendar days
// whose gap between shift-end and next shift-start falls under MinRestHours.
func (m *Model) addH9MinimumRest(minRestMinutes int) {
	count := 0
	for _, member := range m.ni.Members {
		for _, d := range m.ni.Days {
			next := d.AddDate(0, 0, 1)
			for _, p1 := range m.ni.Patterns {
				t1 := Triple{Member: member.ID, Pattern: p1.ID, Date: d}
				bv1, ok1 := m.Vars.Assign[t1]
				if !ok1 {
					continue
				}
				end1 := p1.EndMinute()
				for _, p2 := range m.ni.Patterns {
					t2 := Triple{Member: member.ID, Pattern: p2.ID, Date: next}
					bv2, ok2 := m.Vars.Assign[t2]
					if !ok2 {
						continue
					}
					gap := p2.StartMinute + 24*60 - end1
					if gap < minRestMinutes {
						m.Builder.AddBoolOr(bv1.Not(), bv2.Not())
						count++
					}
				}
			}
		}
	}
	m.log.ConstraintBuilt("H9_minimum_rest", count)
}

// addH10SlotHeadcountBounds enforces the per-slot min/max headcount the
// coverage builder computed from TimeSlotRequirement/SpecificTimeSlotRequirement.
// The minimum side is relaxed through a Shortfall slack variable rather than
// enforced directly, since understaffing must be representable (and
// penalized), not merely infeasible; the maximum side is a true hard bound.
func (m *Model) addH10SlotHeadcountBounds() {
	count := 0
	for slot, max := range m.cov.MaxHeadcount {
		if max == nil {
			continue
		}
		expr := cpmodel.NewLinearExpr()
		for _, bv := range m.Vars.BySlot[slot] {
			expr.Add(bv)
		}
		bound := int64(*max) - int64(m.cov.FixedCount[slot])
		m.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(bound))
		count++
	}
	m.log.ConstraintBuilt("H10_slot_headcount_max", count)
}

func varName(prefix string, t Triple) string {
	return prefix + "_m" + itoa(int64(t.Member)) + "_p" + itoa(int64(t.Pattern)) + "_" + t.Date.Format("20060102")
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// buildErr wraps a programmer error encountered while assembling the model
// from already-normalized input.
func buildErr(component, details string) error {
	return errors.InternalModel(component, details)
}
