// Package solver is the top-level collaborator spec §6 calls solve: it
// wires the Input Normalizer, Slot Coverage Builder, Model Builder, Solver
// Driver, and Diagnostic Extractor into the one department/date-range
// operation the rest of the system depends on.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/paiban/paiban/internal/coverage"
	"github.com/paiban/paiban/internal/cpsat"
	"github.com/paiban/paiban/internal/diagnostics"
	"github.com/paiban/paiban/internal/metrics"
	"github.com/paiban/paiban/internal/normalize"
	"github.com/paiban/paiban/pkg/errors"
	"github.com/paiban/paiban/pkg/logger"
	"github.com/paiban/paiban/pkg/model"
)

// Config carries the algorithm knobs the solve needs beyond the
// department/date-range arguments themselves.
type Config struct {
	WallClockLimit time.Duration
	SlotMinutes    int
	MinRestHours   int
}

// Persister is the subset of the repository layer a solve needs to commit
// its output; kept narrow so this package doesn't import internal/repository
// directly.
type Persister interface {
	ReplaceAssignments(ctx context.Context, deptID model.ID, start, end time.Time, assignments []*model.Assignment) error
}

// Result is the solve's outcome, matching the external contract of spec §6:
// success, the solved assignments, and the date-keyed diagnostics (soft
// violations on a successful solve, a single "general" entry on a failed one).
type Result struct {
	Success        bool                 `json:"success"`
	Assignments    []*model.Assignment  `json:"assignments,omitempty"`
	InfeasibleDays map[string][]string  `json:"infeasible_days,omitempty"`
	Statistics     *Statistics          `json:"statistics"`
	Duration       time.Duration        `json:"duration"`
	Message        string               `json:"message,omitempty"`
}

// Statistics summarizes one solve for observability and for the stats
// surface spec §8 carries over from the ambient stack.
type Statistics struct {
	TotalAssignments int     `json:"total_assignments"`
	TotalSlots       int     `json:"total_slots"`
	ShortfallSlots   int     `json:"shortfall_slots"`
	FillRate         float64 `json:"fill_rate"`
	ObjectiveValue   float64 `json:"objective_value"`
	TotalWorkMinutes int     `json:"total_work_minutes"`
}

// Solve runs one full department/date-range solve: load, normalize, build
// coverage, build and drive the CP-SAT model, and extract diagnostics. It
// does not persist anything — callers decide whether/when to call Persist
// with the result, matching spec §6's explicit separation between solving
// and committing.
func Solve(ctx context.Context, loader normalize.Loader, deptID model.ID, start, end time.Time, cfg Config) (*Result, error) {
	log := logger.NewSchedulerLogger()
	startTime := time.Now()

	ni, err := normalize.Normalize(ctx, loader, deptID, start, end)
	if err != nil {
		return nil, err
	}

	log.StartSolve(int64(deptID), len(ni.Days), len(ni.Members))

	cov := coverage.Build(ni, cfg.SlotMinutes)

	minRestMinutes := cfg.MinRestHours * 60
	m, err := cpsat.Build(ni, cov, minRestMinutes, log)
	if err != nil {
		return nil, err
	}

	solveResult, err := m.Drive(ctx, cfg.WallClockLimit)
	if err != nil {
		return nil, err
	}

	duration := time.Since(startTime)

	deptLabel := fmt.Sprintf("%d", deptID)

	if solveResult.Status != cpsat.StatusOptimal && solveResult.Status != cpsat.StatusFeasible {
		log.SolveComplete(int64(deptID), duration, false, solveResult.ObjectiveValue)
		metrics.RecordScheduleGeneration(deptLabel, false, duration)
		metrics.IncInfeasibleSolve(deptLabel)
		return &Result{
			Success:        false,
			InfeasibleDays: diagnostics.General(fmt.Sprintf("no feasible solution found within the %s wall-clock limit (status: %s)", cfg.WallClockLimit, solveResult.Status)),
			Statistics:     &Statistics{},
			Duration:       duration,
			Message:        "no feasible solution",
		}, nil
	}

	log.SolveComplete(int64(deptID), duration, true, solveResult.ObjectiveValue)
	metrics.RecordScheduleGeneration(deptLabel, true, duration)

	assignments := extractAssignments(ni, m.Vars, solveResult, deptID)
	violations := diagnostics.Extract(ni, m.Vars, solveResult)
	slackNonzero := 0
	for _, msgs := range violations {
		slackNonzero += len(msgs)
	}
	metrics.SetSlackNonzero(deptLabel, slackNonzero)
	for date, msgs := range violations {
		for _, msg := range msgs {
			log.DiagnosticEmitted(date, msg)
		}
	}

	stats := computeStatistics(ni, cov, m.Vars, solveResult, assignments)

	result := &Result{
		Success:        true,
		Assignments:    assignments,
		InfeasibleDays: violations,
		Statistics:     stats,
		Duration:       duration,
	}
	if len(violations) > 0 {
		result.Message = fmt.Sprintf("solved with %d day(s) carrying soft-constraint violations", len(violations))
	} else {
		result.Message = "solved with no soft-constraint violations"
	}
	return result, nil
}

// Persist commits a successful Result's assignments, replacing whatever was
// previously stored in [start,end] for the department (spec §6
// replace_assignments). Callers must not call this for a failed Result.
func Persist(ctx context.Context, persister Persister, deptID model.ID, start, end time.Time, result *Result) error {
	if !result.Success {
		return errors.New(errors.CodeInvalidInput, "cannot persist an unsuccessful solve result")
	}
	return persister.ReplaceAssignments(ctx, deptID, start, end, result.Assignments)
}

func extractAssignments(ni *normalize.NormalizedInputs, vars *cpsat.Vars, result *cpsat.SolveResult, deptID model.ID) []*model.Assignment {
	var out []*model.Assignment
	for t, bv := range vars.Assign {
		if !result.BoolValue(bv) {
			continue
		}
		out = append(out, &model.Assignment{
			DepartmentID: deptID,
			EmployeeID:   t.Member,
			PatternID:    t.Pattern,
			Date:         t.Date,
		})
	}
	for md, patternID := range ni.PreAssignedDays {
		out = append(out, &model.Assignment{
			DepartmentID: deptID,
			EmployeeID:   md.Member,
			PatternID:    patternID,
			Date:         md.Date,
		})
	}
	return out
}

func computeStatistics(ni *normalize.NormalizedInputs, cov *coverage.Coverage, vars *cpsat.Vars, result *cpsat.SolveResult, assignments []*model.Assignment) *Statistics {
	stats := &Statistics{
		TotalAssignments: len(assignments),
		TotalSlots:       len(cov.Variable),
		ObjectiveValue:   result.ObjectiveValue,
	}
	for _, iv := range vars.Shortfall {
		stats.ShortfallSlots += int(result.IntValue(iv))
	}
	if stats.TotalSlots > 0 {
		filled := stats.TotalSlots - stats.ShortfallSlots
		if filled < 0 {
			filled = 0
		}
		stats.FillRate = float64(filled) / float64(stats.TotalSlots) * 100
	}
	for _, a := range assignments {
		stats.TotalWorkMinutes += ni.WorkMinutes[a.PatternID]
	}
	return stats
}
