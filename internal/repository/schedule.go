// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paiban/paiban/internal/database"
	"github.com/paiban/paiban/internal/normalize"
	"github.com/paiban/paiban/pkg/model"
)

// ScheduleRepository is the persistence collaborator spec §6 names:
// load_department_inputs is a pure read that fans out across every entity
// table for one department/date-range, and replace_assignments is the
// atomic delete-then-insert that commits a solved roster.
type ScheduleRepository struct {
	db *database.DB
}

// NewScheduleRepository creates the repository.
func NewScheduleRepository(db *database.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// LoadDepartmentInputs implements normalize.Loader: it reads every entity
// table scoped to the department and, where relevant, the [start,end] date
// range, and returns them as a normalize.RawRecords bundle ready to index.
func (r *ScheduleRepository) LoadDepartmentInputs(ctx context.Context, deptID model.ID, start, end time.Time) (*normalize.RawRecords, error) {
	db := r.db
	raw := &normalize.RawRecords{}

	dept, err := r.loadDepartment(ctx, db, deptID)
	if err != nil {
		return nil, err
	}
	raw.Department = dept
	if dept == nil {
		return raw, nil
	}

	if raw.Employees, err = r.loadEmployees(ctx, db, deptID); err != nil {
		return nil, err
	}
	if raw.Patterns, err = r.loadPatterns(ctx, db, deptID); err != nil {
		return nil, err
	}
	if raw.DayGroups, err = r.loadDayGroups(ctx, db, deptID); err != nil {
		return nil, err
	}
	if raw.TimeSlotRequirements, err = r.loadTimeSlotRequirements(ctx, db, deptID); err != nil {
		return nil, err
	}
	if raw.SpecificDateRequirements, err = r.loadSpecificDateRequirements(ctx, db, deptID, start, end); err != nil {
		return nil, err
	}
	if raw.SpecificTimeSlotRequirements, err = r.loadSpecificTimeSlotRequirements(ctx, db, deptID, start, end); err != nil {
		return nil, err
	}
	if raw.LeaveRequests, err = r.loadLeaveRequests(ctx, db, deptID, start, end); err != nil {
		return nil, err
	}
	if raw.DesignatedHolidays, err = r.loadDesignatedHolidays(ctx, db, deptID, start, end); err != nil {
		return nil, err
	}
	if raw.PaidLeaves, err = r.loadPaidLeaves(ctx, db, deptID, start, end); err != nil {
		return nil, err
	}
	if raw.FixedAssignments, err = r.loadFixedAssignments(ctx, db, deptID, start, end); err != nil {
		return nil, err
	}
	if raw.OtherAssignments, err = r.loadOtherAssignments(ctx, db, deptID, start, end); err != nil {
		return nil, err
	}
	if raw.RelationshipGroups, err = r.loadRelationshipGroups(ctx, db, deptID); err != nil {
		return nil, err
	}
	if raw.Settings, err = r.loadSolverSettings(ctx, db, deptID); err != nil {
		return nil, err
	}

	return raw, nil
}

func (r *ScheduleRepository) loadDepartment(ctx context.Context, db DB, id model.ID) (*model.Department, error) {
	row := db.QueryRowContext(ctx, `SELECT id, name, created_at, updated_at FROM departments WHERE id = $1`, id)
	d := &model.Department{}
	err := row.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading department: %w", err)
	}
	return d, nil
}

func (r *ScheduleRepository) loadEmployees(ctx context.Context, db DB, deptID model.ID) ([]*model.Employee, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, department_id, name, kind, wage_rate, min_monthly_salary, max_monthly_salary,
		       monthly_salary, max_annual_salary, current_annual_salary, salary_year_start_month,
		       max_hours_per_day, min_days_off_per_week, min_monthly_days_off,
		       max_consecutive_work_days, enforce_exact_holidays, priority_score,
		       created_at, updated_at
		FROM employees WHERE department_id = $1`, deptID)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	defer rows.Close()

	var out []*model.Employee
	for rows.Next() {
		e := &model.Employee{}
		var kind string
		var wage, minMonthly, maxMonthly, monthlySalary, maxAnnual sql.NullFloat64
		var curAnnual float64
		var salaryYearStartMonth sql.NullInt64
		var maxConsecutive sql.NullInt64
		if err := rows.Scan(&e.ID, &e.DepartmentID, &e.Name, &kind, &wage, &minMonthly, &maxMonthly,
			&monthlySalary, &maxAnnual, &curAnnual, &salaryYearStartMonth,
			&e.MaxHoursPerDay, &e.MinDaysOffPerWeek,
			&e.MinMonthlyDaysOff, &maxConsecutive, &e.EnforceExactHolidays, &e.PriorityScore,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		e.CurrentAnnualSalary = curAnnual
		if maxAnnual.Valid {
			v := maxAnnual.Float64
			e.MaxAnnualSalary = &v
		}
		if salaryYearStartMonth.Valid {
			e.SalaryYearStartMonth = int(salaryYearStartMonth.Int64)
		}
		if kind == "salaried" {
			e.Kind = model.KindSalaried
			e.Salaried = &model.SalariedTerms{
				MonthlySalary: monthlySalary.Float64,
			}
		} else {
			e.Kind = model.KindHourly
			hourly := &model.HourlyTerms{WageRate: wage.Float64}
			if minMonthly.Valid {
				v := minMonthly.Float64
				hourly.MinMonthlySalary = &v
			}
			if maxMonthly.Valid {
				v := maxMonthly.Float64
				hourly.MaxMonthlySalary = &v
			}
			e.Hourly = hourly
		}
		if maxConsecutive.Valid {
			v := int(maxConsecutive.Int64)
			e.MaxConsecutiveWorkDays = &v
		}
		e.AllowedDayGroups, err = r.loadEmployeeDayGroups(ctx, db, e.ID)
		if err != nil {
			return nil, err
		}
		e.ShiftPreferences, err = r.loadEmployeeShiftPreferences(ctx, db, e.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadEmployeeDayGroups(ctx context.Context, db DB, empID model.ID) ([]model.ID, error) {
	rows, err := db.QueryContext(ctx, `SELECT day_group_id FROM employee_day_groups WHERE employee_id = $1`, empID)
	if err != nil {
		return nil, fmt.Errorf("loading employee day groups: %w", err)
	}
	defer rows.Close()
	var out []model.ID
	for rows.Next() {
		var id model.ID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadEmployeeShiftPreferences(ctx context.Context, db DB, empID model.ID) ([]model.ShiftPreference, error) {
	rows, err := db.QueryContext(ctx, `SELECT pattern_id, priority FROM employee_shift_preferences WHERE employee_id = $1 ORDER BY priority ASC`, empID)
	if err != nil {
		return nil, fmt.Errorf("loading employee shift preferences: %w", err)
	}
	defer rows.Close()
	var out []model.ShiftPreference
	for rows.Next() {
		var pref model.ShiftPreference
		if err := rows.Scan(&pref.PatternID, &pref.Priority); err != nil {
			return nil, err
		}
		out = append(out, pref)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadPatterns(ctx context.Context, db DB, deptID model.ID) ([]*model.ShiftPattern, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, department_id, name, start_minute, duration_minutes, break_minutes,
		       is_night_shift, min_headcount, max_headcount, created_at, updated_at
		FROM shift_patterns WHERE department_id = $1`, deptID)
	if err != nil {
		return nil, fmt.Errorf("loading shift patterns: %w", err)
	}
	defer rows.Close()
	var out []*model.ShiftPattern
	for rows.Next() {
		p := &model.ShiftPattern{}
		var maxHeadcount sql.NullInt64
		if err := rows.Scan(&p.ID, &p.DepartmentID, &p.Name, &p.StartMinute, &p.DurationMin,
			&p.BreakMinutes, &p.IsNightShift, &p.MinHeadcount, &maxHeadcount,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning shift pattern: %w", err)
		}
		if maxHeadcount.Valid {
			v := int(maxHeadcount.Int64)
			p.MaxHeadcount = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadDayGroups(ctx context.Context, db DB, deptID model.ID) ([]*model.DayGroup, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, department_id, name, weekdays, created_at, updated_at FROM day_groups WHERE department_id = $1`, deptID)
	if err != nil {
		return nil, fmt.Errorf("loading day groups: %w", err)
	}
	defer rows.Close()
	var out []*model.DayGroup
	for rows.Next() {
		g := &model.DayGroup{}
		var weekdays int
		if err := rows.Scan(&g.ID, &g.DepartmentID, &g.Name, &weekdays, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning day group: %w", err)
		}
		g.Weekdays = model.WeekdaySet(weekdays)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadTimeSlotRequirements(ctx context.Context, db DB, deptID model.ID) ([]*model.TimeSlotRequirement, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, department_id, day_group_id, start_minute, end_minute, min_headcount, max_headcount, created_at, updated_at
		FROM time_slot_requirements WHERE department_id = $1`, deptID)
	if err != nil {
		return nil, fmt.Errorf("loading time slot requirements: %w", err)
	}
	defer rows.Close()
	var out []*model.TimeSlotRequirement
	for rows.Next() {
		req := &model.TimeSlotRequirement{}
		var maxHeadcount sql.NullInt64
		if err := rows.Scan(&req.ID, &req.DepartmentID, &req.DayGroupID, &req.StartMinute,
			&req.EndMinute, &req.MinHeadcount, &maxHeadcount, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning time slot requirement: %w", err)
		}
		if maxHeadcount.Valid {
			v := int(maxHeadcount.Int64)
			req.MaxHeadcount = &v
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadSpecificDateRequirements(ctx context.Context, db DB, deptID model.ID, start, end time.Time) ([]*model.SpecificDateRequirement, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, department_id, date, shift_pattern_id, min_headcount, max_headcount, created_at, updated_at
		FROM specific_date_requirements WHERE department_id = $1 AND date BETWEEN $2 AND $3`, deptID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading specific date requirements: %w", err)
	}
	defer rows.Close()
	var out []*model.SpecificDateRequirement
	for rows.Next() {
		req := &model.SpecificDateRequirement{}
		var maxHeadcount sql.NullInt64
		if err := rows.Scan(&req.ID, &req.DepartmentID, &req.Date, &req.PatternID, &req.MinHeadcount, &maxHeadcount, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning specific date requirement: %w", err)
		}
		if maxHeadcount.Valid {
			v := int(maxHeadcount.Int64)
			req.MaxHeadcount = &v
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadSpecificTimeSlotRequirements(ctx context.Context, db DB, deptID model.ID, start, end time.Time) ([]*model.SpecificTimeSlotRequirement, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, department_id, date, start_minute, end_minute, min_headcount, max_headcount, created_at, updated_at
		FROM specific_time_slot_requirements WHERE department_id = $1 AND date BETWEEN $2 AND $3`, deptID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading specific time slot requirements: %w", err)
	}
	defer rows.Close()
	var out []*model.SpecificTimeSlotRequirement
	for rows.Next() {
		req := &model.SpecificTimeSlotRequirement{}
		var maxHeadcount sql.NullInt64
		if err := rows.Scan(&req.ID, &req.DepartmentID, &req.Date, &req.StartMinute, &req.EndMinute,
			&req.MinHeadcount, &maxHeadcount, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning specific time slot requirement: %w", err)
		}
		if maxHeadcount.Valid {
			v := int(maxHeadcount.Int64)
			req.MaxHeadcount = &v
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadLeaveRequests(ctx context.Context, db DB, deptID model.ID, start, end time.Time) ([]*model.LeaveRequest, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT lr.id, lr.department_id, lr.employee_id, lr.date, lr.reason, lr.created_at, lr.updated_at
		FROM leave_requests lr WHERE lr.department_id = $1 AND lr.date BETWEEN $2 AND $3 AND lr.status = 'approved'`, deptID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading leave requests: %w", err)
	}
	defer rows.Close()
	var out []*model.LeaveRequest
	for rows.Next() {
		lr := &model.LeaveRequest{}
		if err := rows.Scan(&lr.ID, &lr.DepartmentID, &lr.EmployeeID, &lr.Date, &lr.Reason, &lr.CreatedAt, &lr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning leave request: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadDesignatedHolidays(ctx context.Context, db DB, deptID model.ID, start, end time.Time) ([]*model.DesignatedHoliday, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, department_id, date, name, created_at, updated_at
		FROM designated_holidays WHERE department_id = $1 AND date BETWEEN $2 AND $3`, deptID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading designated holidays: %w", err)
	}
	defer rows.Close()
	var out []*model.DesignatedHoliday
	for rows.Next() {
		h := &model.DesignatedHoliday{}
		if err := rows.Scan(&h.ID, &h.DepartmentID, &h.Date, &h.Name, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning designated holiday: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadPaidLeaves(ctx context.Context, db DB, deptID model.ID, start, end time.Time) ([]*model.PaidLeave, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, department_id, employee_id, date, created_at, updated_at
		FROM paid_leaves WHERE department_id = $1 AND date BETWEEN $2 AND $3`, deptID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading paid leaves: %w", err)
	}
	defer rows.Close()
	var out []*model.PaidLeave
	for rows.Next() {
		pl := &model.PaidLeave{}
		if err := rows.Scan(&pl.ID, &pl.DepartmentID, &pl.EmployeeID, &pl.Date, &pl.CreatedAt, &pl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning paid leave: %w", err)
		}
		out = append(out, pl)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadFixedAssignments(ctx context.Context, db DB, deptID model.ID, start, end time.Time) ([]*model.FixedAssignment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, department_id, employee_id, pattern_id, date, created_at, updated_at
		FROM fixed_assignments WHERE department_id = $1 AND date BETWEEN $2 AND $3`, deptID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading fixed assignments: %w", err)
	}
	defer rows.Close()
	var out []*model.FixedAssignment
	for rows.Next() {
		fa := &model.FixedAssignment{}
		if err := rows.Scan(&fa.ID, &fa.DepartmentID, &fa.EmployeeID, &fa.PatternID, &fa.Date, &fa.CreatedAt, &fa.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning fixed assignment: %w", err)
		}
		out = append(out, fa)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadOtherAssignments(ctx context.Context, db DB, deptID model.ID, start, end time.Time) ([]*model.OtherAssignment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, department_id, employee_id, date, description, created_at, updated_at
		FROM other_assignments WHERE department_id = $1 AND date BETWEEN $2 AND $3`, deptID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading other assignments: %w", err)
	}
	defer rows.Close()
	var out []*model.OtherAssignment
	for rows.Next() {
		oa := &model.OtherAssignment{}
		if err := rows.Scan(&oa.ID, &oa.DepartmentID, &oa.EmployeeID, &oa.Date, &oa.Description, &oa.CreatedAt, &oa.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning other assignment: %w", err)
		}
		out = append(out, oa)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) loadRelationshipGroups(ctx context.Context, db DB, deptID model.ID) ([]*model.RelationshipGroup, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, department_id, rule, weight, created_at, updated_at FROM relationship_groups WHERE department_id = $1`, deptID)
	if err != nil {
		return nil, fmt.Errorf("loading relationship groups: %w", err)
	}
	defer rows.Close()
	var out []*model.RelationshipGroup
	for rows.Next() {
		g := &model.RelationshipGroup{}
		var rule string
		if err := rows.Scan(&g.ID, &g.DepartmentID, &rule, &g.Weight, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning relationship group: %w", err)
		}
		g.Rule = model.RelationshipRule(rule)
		memberRows, err := db.QueryContext(ctx, `SELECT employee_id FROM relationship_group_members WHERE group_id = $1`, g.ID)
		if err != nil {
			return nil, fmt.Errorf("loading relationship group members: %w", err)
		}
		for memberRows.Next() {
			var id model.ID
			if err := memberRows.Scan(&id); err != nil {
				memberRows.Close()
				return nil, err
			}
			g.Members = append(g.Members, id)
		}
		memberRows.Close()
		out = append(out, g)
	}
	return out, rows.Err()
}

// loadSolverSettings returns the department's SolverSettings row, preferring
// the one marked IsDefault when more than one somehow exists, or nil when
// there is none at all — Normalize fills in DefaultSolverSettings in that
// case (spec §6).
func (r *ScheduleRepository) loadSolverSettings(ctx context.Context, db DB, deptID model.ID) (*model.SolverSettings, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, department_id, is_default, shortfall_penalty, unavailable_day_penalty,
		       incompatible_penalty, work_day_surplus_penalty, consecutive_surplus_penalty,
		       salary_shortfall_penalty, salary_surplus_penalty, abs_deviation_penalty,
		       priority_reward_weight, difficulty_bonus_weight, preference_bonus_weight,
		       pairing_bonus_weight, enforce_exact_holidays_multiplier, created_at, updated_at
		FROM solver_settings WHERE department_id = $1 ORDER BY is_default DESC LIMIT 1`, deptID)
	s := &model.SolverSettings{}
	err := row.Scan(&s.ID, &s.DepartmentID, &s.IsDefault, &s.ShortfallPenalty, &s.UnavailableDayPenalty,
		&s.IncompatiblePenalty, &s.WorkDaySurplusPenalty, &s.ConsecutiveSurplusPenalty,
		&s.SalaryShortfallPenalty, &s.SalarySurplusPenalty, &s.AbsDeviationPenalty,
		&s.PriorityRewardWeight, &s.DifficultyBonusWeight, &s.PreferenceBonusWeight,
		&s.PairingBonusWeight, &s.EnforceExactHolidaysMultiplier, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading solver settings: %w", err)
	}
	return s, nil
}

// SaveDefaultSolverSettings persists a newly-created default SolverSettings
// row and demotes any previous default, per spec §6 ("When multiple
// defaults exist, one is chosen and the others demoted").
func (r *ScheduleRepository) SaveDefaultSolverSettings(ctx context.Context, s *model.SolverSettings) error {
	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE solver_settings SET is_default = false WHERE department_id = $1 AND is_default = true`, s.DepartmentID); err != nil {
			return fmt.Errorf("demoting previous default settings: %w", err)
		}
		now := time.Now()
		s.CreatedAt, s.UpdatedAt = now, now
		s.IsDefault = true
		query := `INSERT INTO solver_settings (
			department_id, is_default, shortfall_penalty, unavailable_day_penalty,
			incompatible_penalty, work_day_surplus_penalty, consecutive_surplus_penalty,
			salary_shortfall_penalty, salary_surplus_penalty, abs_deviation_penalty,
			priority_reward_weight, difficulty_bonus_weight, preference_bonus_weight,
			pairing_bonus_weight, enforce_exact_holidays_multiplier, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17) RETURNING id`
		return tx.QueryRowContext(ctx, query, s.DepartmentID, s.IsDefault, s.ShortfallPenalty,
			s.UnavailableDayPenalty, s.IncompatiblePenalty, s.WorkDaySurplusPenalty,
			s.ConsecutiveSurplusPenalty, s.SalaryShortfallPenalty, s.SalarySurplusPenalty,
			s.AbsDeviationPenalty, s.PriorityRewardWeight, s.DifficultyBonusWeight,
			s.PreferenceBonusWeight, s.PairingBonusWeight, s.EnforceExactHolidaysMultiplier,
			s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	})
}

// ReplaceAssignments implements spec §6's replace_assignments: delete every
// existing Assignment in [start,end] for the department, then bulk-insert
// the solved set, as one transaction so a concurrent reader never observes
// a half-replaced roster (spec §5).
func (r *ScheduleRepository) ReplaceAssignments(ctx context.Context, deptID model.ID, start, end time.Time, assignments []*model.Assignment) error {
	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE department_id = $1 AND date BETWEEN $2 AND $3`, deptID, start, end); err != nil {
			return fmt.Errorf("deleting existing assignments: %w", err)
		}
		for _, a := range assignments {
			now := time.Now()
			a.DepartmentID, a.CreatedAt, a.UpdatedAt = deptID, now, now
			query := `INSERT INTO assignments (department_id, employee_id, pattern_id, date, created_at, updated_at)
				VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`
			if err := tx.QueryRowContext(ctx, query, a.DepartmentID, a.EmployeeID, a.PatternID, a.Date, a.CreatedAt, a.UpdatedAt).Scan(&a.ID); err != nil {
				return fmt.Errorf("inserting assignment for employee %d on %s: %w", a.EmployeeID, a.Date.Format("2006-01-02"), err)
			}
		}
		return nil
	})
}
