package normalize

import (
	"context"
	"testing"
	"time"

	"github.com/paiban/paiban/pkg/errors"
	"github.com/paiban/paiban/pkg/model"
)

type fakeLoader struct {
	records *RawRecords
	err     error
}

func (f *fakeLoader) LoadDepartmentInputs(ctx context.Context, deptID model.ID, start, end time.Time) (*RawRecords, error) {
	return f.records, f.err
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_RejectsReversedRange(t *testing.T) {
	loader := &fakeLoader{records: &RawRecords{Department: &model.Department{}}}
	_, err := Normalize(context.Background(), loader, 1, date(2026, 2, 1), date(2026, 1, 1))
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestNormalize_RejectsMissingDepartment(t *testing.T) {
	loader := &fakeLoader{records: &RawRecords{Department: nil}}
	_, err := Normalize(context.Background(), loader, 1, date(2026, 1, 1), date(2026, 1, 31))
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestNormalize_IndexesLeaveAndHolidays(t *testing.T) {
	emp := &model.Employee{BaseEntity: model.BaseEntity{ID: 1}}
	loader := &fakeLoader{records: &RawRecords{
		Department: &model.Department{BaseEntity: model.BaseEntity{ID: 9}},
		Employees:  []*model.Employee{emp},
		LeaveRequests: []*model.LeaveRequest{
			{EmployeeID: 1, Date: date(2026, 1, 5)},
		},
		DesignatedHolidays: []*model.DesignatedHoliday{
			{Date: date(2026, 1, 10)},
		},
	}}

	ni, err := Normalize(context.Background(), loader, 9, date(2026, 1, 1), date(2026, 1, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ni.IsBlocked(1, date(2026, 1, 5)) {
		t.Error("member should be blocked on their leave date")
	}
	if !ni.IsBlocked(1, date(2026, 1, 10)) {
		t.Error("every member should be blocked on a designated holiday")
	}
	if ni.IsBlocked(1, date(2026, 1, 6)) {
		t.Error("member should not be blocked on an unrelated date")
	}
	if len(ni.Days) != 31 {
		t.Errorf("expected 31 days, got %d", len(ni.Days))
	}
}

func TestNormalize_RejectsUnknownDayGroupInAllowlist(t *testing.T) {
	emp := &model.Employee{BaseEntity: model.BaseEntity{ID: 1}, AllowedDayGroups: []model.ID{99}}
	loader := &fakeLoader{records: &RawRecords{
		Department: &model.Department{BaseEntity: model.BaseEntity{ID: 9}},
		Employees:  []*model.Employee{emp},
	}}

	_, err := Normalize(context.Background(), loader, 9, date(2026, 1, 1), date(2026, 1, 31))
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Fatalf("expected InvalidInput for unknown day group reference, got %v", err)
	}
}

func TestNormalize_DefaultsSolverSettingsWhenAbsent(t *testing.T) {
	loader := &fakeLoader{records: &RawRecords{
		Department: &model.Department{BaseEntity: model.BaseEntity{ID: 9}},
	}}

	ni, err := Normalize(context.Background(), loader, 9, date(2026, 1, 1), date(2026, 1, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ni.Settings == nil || !ni.Settings.IsDefault {
		t.Error("expected a default SolverSettings when none was loaded")
	}
}
