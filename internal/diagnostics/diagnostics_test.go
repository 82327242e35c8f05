package diagnostics

import (
	"testing"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/paiban/internal/cpsat"
	"github.com/paiban/paiban/internal/normalize"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtract_NoViolationsWhenAllSlackZero(t *testing.T) {
	ni := &normalize.NormalizedInputs{Start: day(2026, 1, 1)}
	vars := &cpsat.Vars{}
	result := &cpsat.SolveResult{
		BoolValue: func(cpmodel.BoolVar) bool { return false },
		IntValue:  func(cpmodel.IntVar) int64 { return 0 },
	}
	msgs := Extract(ni, vars, result)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", msgs)
	}
}

func TestGeneral_WrapsSingleMessage(t *testing.T) {
	msgs := General("no solution found within time limit; constraints may be too tight")
	if len(msgs["general"]) != 1 {
		t.Fatalf("expected one general message, got %v", msgs)
	}
}
