package cpsat

import (
	"context"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/sat"
	"google.golang.org/protobuf/proto"

	"github.com/paiban/paiban/pkg/errors"
)

// Status is our own enum over the solver's outcome, so callers never need
// to import the underlying proto package just to branch on it.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusModelInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusModelInvalid:
		return "model_invalid"
	default:
		return "unknown"
	}
}

// SolveResult is everything the scheduler (and the diagnostic extractor)
// need from a finished solve, with the raw OR-Tools response kept private
// to this package.
type SolveResult struct {
	Status         Status
	ObjectiveValue float64
	BoolValue      func(v cpmodel.BoolVar) bool
	IntValue       func(v cpmodel.IntVar) int64
}

// Drive compiles the model and invokes the CP-SAT solver with the given
// wall-clock budget. Because the OR-Tools Go binding's solve call blocks
// until completion or its own internal deadline, ctx cancellation is
// enforced by racing that call against ctx.Done in a goroutine: on
// cancellation Drive returns promptly, but the underlying solve continues
// running in the background until its own deadline elapses.
func (m *Model) Drive(ctx context.Context, wallClockLimit time.Duration) (*SolveResult, error) {
	proto_, err := m.Builder.Model()
	if err != nil {
		return nil, errors.InternalModel("cpsat_driver", "building model proto: "+err.Error())
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(wallClockLimit.Seconds()),
	}

	type outcome struct {
		resp *cpmodel.CpSolverResponse
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		resp, err := cpmodel.SolveCpModelWithParameters(proto_, params)
		done <- outcome{resp, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		if o.err != nil {
			return nil, errors.InternalModel("cpsat_driver", "solving model: "+o.err.Error())
		}
		return toSolveResult(o.resp), nil
	}
}

func toSolveResult(resp *cpmodel.CpSolverResponse) *SolveResult {
	r := &SolveResult{
		ObjectiveValue: resp.GetObjectiveValue(),
		BoolValue: func(v cpmodel.BoolVar) bool {
			return cpmodel.SolutionBooleanValue(resp, v)
		},
		IntValue: func(v cpmodel.IntVar) int64 {
			return cpmodel.SolutionIntegerValue(resp, v)
		},
	}
	switch resp.GetStatus() {
	case cpmodel.CpSolverStatus_OPTIMAL:
		r.Status = StatusOptimal
	case cpmodel.CpSolverStatus_FEASIBLE:
		r.Status = StatusFeasible
	case cpmodel.CpSolverStatus_INFEASIBLE:
		r.Status = StatusInfeasible
	case cpmodel.CpSolverStatus_MODEL_INVALID:
		r.Status = StatusModelInvalid
	default:
		r.Status = StatusUnknown
	}
	return r
}
