// Package diagnostics implements the Diagnostic Extractor: it walks every
// slack/surplus variable a solved model carries and turns the nonzero ones
// into the human-readable, date-keyed messages that are part of the
// external contract (spec §4.5, §6, §7 SoftViolation).
package diagnostics

import (
	"fmt"
	"sort"
	"time"

	"github.com/paiban/paiban/internal/cpsat"
	"github.com/paiban/paiban/internal/normalize"
)

// dateKey formats a date the way the external contract's infeasible_days
// map keys are documented: "YYYY-MM-DD".
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Extract reads every slack variable's solved value and returns a
// date-keyed list of violation messages. An empty result means the solve
// had no soft-constraint violations at all. Messages keyed to
// month-global constraints (holidays, salary) are filed under the
// department's start date per spec §4.5 and DESIGN.md Q2.
func Extract(ni *normalize.NormalizedInputs, vars *cpsat.Vars, result *cpsat.SolveResult) map[string][]string {
	out := map[string][]string{}
	add := func(date time.Time, msg string) {
		k := dateKey(date)
		out[k] = append(out[k], msg)
	}

	extractShortfall(ni, vars, result, add)
	extractUnavailableDay(ni, vars, result, add)
	extractIncompatible(ni, vars, result, add)
	extractWorkDaySurplus(ni, vars, result, add)
	extractConsecutiveSurplus(ni, vars, result, add)
	extractSalaryBand(ni, vars, result, add)
	extractAbsDeviation(ni, vars, result, add)

	for k := range out {
		sort.Strings(out[k])
	}
	return out
}

func extractShortfall(ni *normalize.NormalizedInputs, vars *cpsat.Vars, result *cpsat.SolveResult, add func(time.Time, string)) {
	for slot, iv := range vars.Shortfall {
		n := result.IntValue(iv)
		if n <= 0 {
			continue
		}
		add(slot.Date, fmt.Sprintf("shortfall: slot %d on %s is short %d worker(s) of its minimum headcount",
			slot.Index, dateKey(slot.Date), n))
	}
}

// extractUnavailableDay reports every member assigned on a date their
// weekday-allowlist excludes (spec §4.3.2, P9): the violation BoolVar is
// forced to match whether the member worked at all that day, so a true
// value here always corresponds to a real assignment on a disallowed day.
func extractUnavailableDay(ni *normalize.NormalizedInputs, vars *cpsat.Vars, result *cpsat.SolveResult, add func(time.Time, string)) {
	for md, bv := range vars.UnavailableDayViolation {
		if !result.BoolValue(bv) {
			continue
		}
		add(md.Date, fmt.Sprintf("unavailable-day: member %d is working on %s, a weekday their allowlist excludes",
			md.Member, dateKey(md.Date)))
	}
}

func extractIncompatible(ni *normalize.NormalizedInputs, vars *cpsat.Vars, result *cpsat.SolveResult, add func(time.Time, string)) {
	for key, iv := range vars.IncompatibleViolation {
		n := result.IntValue(iv)
		if n <= 0 {
			continue
		}
		add(key.Slot.Date, fmt.Sprintf("incompatible: %d member(s) of group %d are covering slot %d on %s at once",
			n+1, key.Group, key.Slot.Index, dateKey(key.Slot.Date)))
	}
}

func extractWorkDaySurplus(ni *normalize.NormalizedInputs, vars *cpsat.Vars, result *cpsat.SolveResult, add func(time.Time, string)) {
	for _, member := range ni.Members {
		iv, ok := vars.WorkDaySurplus[member.ID]
		if !ok {
			continue
		}
		n := result.IntValue(iv)
		if n <= 0 {
			continue
		}
		kind := "holiday"
		if member.EnforceExactHolidays {
			kind = "exact-holiday"
		}
		add(ni.Start, fmt.Sprintf("%s: member %d worked %d day(s) beyond their monthly days-off floor",
			kind, member.ID, n))
	}
}

func extractConsecutiveSurplus(ni *normalize.NormalizedInputs, vars *cpsat.Vars, result *cpsat.SolveResult, add func(time.Time, string)) {
	for _, member := range ni.Members {
		surpluses, ok := vars.ConsecutiveSurplus[member.ID]
		if !ok {
			continue
		}
		cap := 0
		if member.MaxConsecutiveWorkDays != nil {
			cap = *member.MaxConsecutiveWorkDays
		}
		for i, iv := range surpluses {
			n := result.IntValue(iv)
			if n <= 0 {
				continue
			}
			date := ni.Start
			if i < len(ni.Days) {
				date = ni.Days[i]
			}
			add(date, fmt.Sprintf("consecutive-work: member %d exceeded their %d-day consecutive-work cap in the window starting %s",
				member.ID, cap, dateKey(date)))
		}
	}
}

func extractSalaryBand(ni *normalize.NormalizedInputs, vars *cpsat.Vars, result *cpsat.SolveResult, add func(time.Time, string)) {
	for _, member := range ni.Members {
		if iv, ok := vars.SalaryShortfall[member.ID]; ok {
			if n := result.IntValue(iv); n > 0 {
				add(ni.Start, fmt.Sprintf("salary-too-low: member %d fell short of their minimum monthly salary by %d",
					member.ID, n))
			}
		}
		if iv, ok := vars.SalarySurplus[member.ID]; ok {
			if n := result.IntValue(iv); n > 0 {
				add(ni.Start, fmt.Sprintf("salary-too-high: member %d exceeded their maximum monthly salary by %d",
					member.ID, n))
			}
		}
	}
}

func extractAbsDeviation(ni *normalize.NormalizedInputs, vars *cpsat.Vars, result *cpsat.SolveResult, add func(time.Time, string)) {
	for _, member := range ni.Members {
		iv, ok := vars.AbsDeviation[member.ID]
		if !ok {
			continue
		}
		n := result.IntValue(iv)
		if n <= 0 {
			continue
		}
		add(ni.Start, fmt.Sprintf("work-day-deviation: member %d's total work days deviate from the department average by %d day(s)",
			member.ID, n))
	}
}

// General wraps msg as the single "general" entry used when the solver
// produced no FEASIBLE solution within the wall-clock limit (spec §7 Infeasible).
func General(msg string) map[string][]string {
	return map[string][]string{"general": {msg}}
}
