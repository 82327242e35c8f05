// Package coverage implements the Slot Coverage Builder: it turns the
// normalized requirements and patterns into a 30-minute slot index every
// downstream component (model builder, diagnostics) can query.
package coverage

import (
	"time"

	"github.com/paiban/paiban/internal/normalize"
	"github.com/paiban/paiban/pkg/model"
)

// Slot identifies one fixed-size window of one calendar date.
type Slot struct {
	Date  time.Time
	Index int // slot offset within the date, 0-based
}

// Candidate is one (member, pattern) pairing that could cover a slot,
// excluding members already pre-assigned elsewhere via FixedAssignment.
type Candidate struct {
	Member  model.ID
	Pattern model.ID
}

// Coverage is the slot index for one solve: for every slot, which
// (member,pattern) candidates could fill it, what the fixed headcount
// already pinned to it is, and the min/max headcount bound in force.
type Coverage struct {
	SlotMinutes int
	Variable    map[Slot][]Candidate
	FixedCount  map[Slot]int
	MinHeadcount map[Slot]int
	MaxHeadcount map[Slot]*int
}

// Build enumerates every slot a pattern touches on every day it could run,
// and the per-slot headcount bound in force for that day (from
// TimeSlotRequirement, or — on dates with a SpecificTimeSlotRequirement —
// from that override set exclusively, per the spec's coverage-source
// exclusivity rule).
func Build(ni *normalize.NormalizedInputs, slotMinutes int) *Coverage {
	cov := &Coverage{
		SlotMinutes:  slotMinutes,
		Variable:     map[Slot][]Candidate{},
		FixedCount:   map[Slot]int{},
		MinHeadcount: map[Slot]int{},
		MaxHeadcount: map[Slot]*int{},
	}

	for _, d := range ni.Days {
		bounds := boundsForDate(ni, d, slotMinutes)
		for slotIdx, b := range bounds {
			s := Slot{Date: d, Index: slotIdx}
			cov.MinHeadcount[s] = b.min
			cov.MaxHeadcount[s] = b.max
		}
	}

	for _, p := range ni.Patterns {
		slotsPerPattern := ceilDiv(p.DurationMin, slotMinutes)
		for _, d := range ni.Days {
			for _, m := range ni.Members {
				if patternID, ok := ni.PreAssignedPattern(m.ID, d); ok {
					if patternID == p.ID {
						markFixed(cov, d, p, slotMinutes, slotsPerPattern)
					}
					continue
				}
				if ni.IsBlocked(m.ID, d) {
					continue
				}
				if !m.AllowsPattern(p.ID) {
					continue
				}
				// A disallowed weekday is NOT pruned here: per spec §4.3.1/
				// §4.3.2, the weekday allowlist is a soft constraint
				// (unavailable_day_violation), not a hard exclusion like
				// leave or the pattern-preference allowlist above. The
				// model builder links the violation slack instead.
				addCandidate(cov, d, p, m.ID, slotMinutes, slotsPerPattern)
			}
		}
	}

	return cov
}

type headcountBound struct {
	min int
	max *int
}

func boundsForDate(ni *normalize.NormalizedInputs, d time.Time, slotMinutes int) map[int]headcountBound {
	bounds := map[int]headcountBound{}

	if ni.DatesWithSpecificReqs[d] {
		for _, req := range ni.SpecificTimeSlotReqs[d] {
			applyRange(bounds, req.StartMinute, req.EndMinute, slotMinutes, req.MinHeadcount, req.MaxHeadcount)
		}
	} else {
		wd := d.Weekday()
		for _, req := range ni.TimeSlotRequirements {
			g, ok := ni.DayGroupByID[req.DayGroupID]
			if !ok || !g.Weekdays.Has(wd) {
				continue
			}
			applyRange(bounds, req.StartMinute, req.EndMinute, slotMinutes, req.MinHeadcount, req.MaxHeadcount)
		}
	}

	return bounds
}

func applyRange(bounds map[int]headcountBound, startMin, endMin, slotMinutes, minHeadcount int, maxHeadcount *int) {
	startSlot := startMin / slotMinutes
	endSlot := ceilDiv(endMin, slotMinutes)
	for i := startSlot; i < endSlot; i++ {
		b := bounds[i]
		if minHeadcount > b.min {
			b.min = minHeadcount
		}
		if maxHeadcount != nil && (b.max == nil || *maxHeadcount < *b.max) {
			v := *maxHeadcount
			b.max = &v
		}
		bounds[i] = b
	}
}

func addCandidate(cov *Coverage, d time.Time, p *model.ShiftPattern, member model.ID, slotMinutes, slotsPerPattern int) {
	startSlot := p.StartMinute / slotMinutes
	for i := 0; i < slotsPerPattern; i++ {
		slotDate, idx := rollSlot(d, startSlot+i, slotMinutes)
		s := Slot{Date: slotDate, Index: idx}
		cov.Variable[s] = append(cov.Variable[s], Candidate{Member: member, Pattern: p.ID})
	}
}

func markFixed(cov *Coverage, d time.Time, p *model.ShiftPattern, slotMinutes, slotsPerPattern int) {
	startSlot := p.StartMinute / slotMinutes
	for i := 0; i < slotsPerPattern; i++ {
		slotDate, idx := rollSlot(d, startSlot+i, slotMinutes)
		s := Slot{Date: slotDate, Index: idx}
		cov.FixedCount[s]++
	}
}

// rollSlot advances a starting slot index past midnight onto the next
// calendar date, for shifts whose window crosses it.
func rollSlot(d time.Time, slotIdx, slotMinutes int) (time.Time, int) {
	slotsPerDay := (24 * 60) / slotMinutes
	daysForward := slotIdx / slotsPerDay
	idx := slotIdx % slotsPerDay
	if daysForward == 0 {
		return d, idx
	}
	return d.AddDate(0, 0, daysForward), idx
}

func ceilDiv(a, b int) int {
	if a%b == 0 {
		return a / b
	}
	return a/b + 1
}
