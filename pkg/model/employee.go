package model

// EmployeeKind discriminates the two wage arrangements the solver
// understands. Exactly one of Employee.Hourly / Employee.Salaried is
// non-nil, matching the Kind.
type EmployeeKind int

const (
	KindHourly EmployeeKind = iota
	KindSalaried
)

func (k EmployeeKind) String() string {
	if k == KindSalaried {
		return "salaried"
	}
	return "hourly"
}

// HourlyTerms holds the wage terms of an hourly employee. MinMonthlySalary
// and MaxMonthlySalary, when set, feed the salary-band soft constraint
// (salary_shortfall/salary_surplus, spec §4.3.2); either, both, or neither
// may be set independently.
type HourlyTerms struct {
	WageRate         float64  `json:"wage_rate" db:"wage_rate"`
	MinMonthlySalary *float64 `json:"min_monthly_salary,omitempty" db:"min_monthly_salary"`
	MaxMonthlySalary *float64 `json:"max_monthly_salary,omitempty" db:"max_monthly_salary"`
}

// SalariedTerms holds the wage terms of a salaried employee. A salaried
// member's pay does not depend on assigned shifts, so MonthlySalary has no
// bearing on any constraint.
type SalariedTerms struct {
	MonthlySalary float64 `json:"monthly_salary" db:"monthly_salary"`
}

// ShiftPreference pairs a shift pattern with the employee's priority for
// it; smaller is more preferred — priority_map defaults to 100
// for any (member, pattern) not present, and the preference_bonus formula
// (spec §4.3.3) rewards a *lower* priority number, matching priority_score.
type ShiftPreference struct {
	PatternID ID  `json:"pattern_id" db:"pattern_id"`
	Priority  int `json:"priority" db:"priority"`
}

// Employee is a schedulable member of a department.
type Employee struct {
	BaseEntity
	DepartmentID ID     `json:"department_id" db:"department_id"`
	Name         string `json:"name" db:"name"`

	Kind     EmployeeKind   `json:"kind" db:"kind"`
	Hourly   *HourlyTerms   `json:"hourly,omitempty" db:"-"`
	Salaried *SalariedTerms `json:"salaried,omitempty" db:"-"`

	// MaxAnnualSalary and CurrentAnnualSalary are carried on the entity but
	// referenced by no constraint (see DESIGN.md Q3); SalaryYearStartMonth
	// likewise has no bearing on the model — both exist purely as inputs
	// the rest of the system (reporting, CRUD) may use.
	MaxAnnualSalary       *float64 `json:"max_annual_salary,omitempty" db:"max_annual_salary"`
	CurrentAnnualSalary   float64  `json:"current_annual_salary,omitempty" db:"current_annual_salary"`
	SalaryYearStartMonth  int      `json:"salary_year_start_month,omitempty" db:"salary_year_start_month"`

	MaxHoursPerDay         float64 `json:"max_hours_per_day" db:"max_hours_per_day"`
	MinDaysOffPerWeek      int     `json:"min_days_off_per_week" db:"min_days_off_per_week"`
	MinMonthlyDaysOff      int     `json:"min_monthly_days_off" db:"min_monthly_days_off"`
	MaxConsecutiveWorkDays *int    `json:"max_consecutive_work_days,omitempty" db:"max_consecutive_work_days"`
	EnforceExactHolidays   bool    `json:"enforce_exact_holidays" db:"enforce_exact_holidays"`
	PriorityScore          int     `json:"priority_score" db:"priority_score"`

	// AllowedDayGroups gates whole days; an empty slice means unrestricted
	// (spec edge case: no allowlist implies every weekday is allowed).
	AllowedDayGroups []ID `json:"allowed_day_groups,omitempty" db:"-"`
	// ShiftPreferences is the allowlist of patterns this employee may be
	// assigned to (H6); empty means unrestricted. Each entry also carries
	// the priority used by the preference_bonus reward term.
	ShiftPreferences []ShiftPreference `json:"shift_preferences,omitempty" db:"-"`
}

// NewHourlyEmployee constructs an hourly employee with Hourly populated
// and Salaried nil.
func NewHourlyEmployee(deptID ID, name string, wageRate float64) *Employee {
	return &Employee{
		DepartmentID: deptID,
		Name:         name,
		Kind:         KindHourly,
		Hourly:       &HourlyTerms{WageRate: wageRate},
	}
}

// NewSalariedEmployee constructs a salaried employee with Salaried
// populated and Hourly nil.
func NewSalariedEmployee(deptID ID, name string, terms SalariedTerms) *Employee {
	return &Employee{
		DepartmentID: deptID,
		Name:         name,
		Kind:         KindSalaried,
		Salaried:     &terms,
	}
}

// IsSalaried reports whether the employee is paid a monthly salary rather
// than an hourly wage.
func (e *Employee) IsSalaried() bool {
	return e.Kind == KindSalaried
}

// AllowsPattern reports whether the employee's preference allowlist admits
// the given shift pattern. An empty allowlist is unrestricted.
func (e *Employee) AllowsPattern(patternID ID) bool {
	if len(e.ShiftPreferences) == 0 {
		return true
	}
	for _, p := range e.ShiftPreferences {
		if p.PatternID == patternID {
			return true
		}
	}
	return false
}

// PreferencePriority returns the employee's priority for the given pattern,
// defaulting to 100 (spec §4.1: "priority_map[(member_id, pattern_id)] with
// default 100") when the employee carries no explicit preference for it.
func (e *Employee) PreferencePriority(patternID ID) int {
	for _, p := range e.ShiftPreferences {
		if p.PatternID == patternID {
			return p.Priority
		}
	}
	return 100
}

// AllowsDayGroup reports whether the employee's day-group allowlist admits
// the given group. An empty allowlist is unrestricted.
func (e *Employee) AllowsDayGroup(groupID ID) bool {
	if len(e.AllowedDayGroups) == 0 {
		return true
	}
	for _, g := range e.AllowedDayGroups {
		if g == groupID {
			return true
		}
	}
	return false
}
