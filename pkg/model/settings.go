package model

// SolverSettings holds the penalty weights and behavior knobs for one
// department's solves. Exactly one row per department may have
// IsDefault=true; the repository layer demotes any previous default when a
// new one is saved (spec §6).
type SolverSettings struct {
	BaseEntity
	DepartmentID ID   `json:"department_id" db:"department_id"`
	IsDefault    bool `json:"is_default" db:"is_default"`

	ShortfallPenalty            int `json:"shortfall_penalty" db:"shortfall_penalty"`
	UnavailableDayPenalty       int `json:"unavailable_day_penalty" db:"unavailable_day_penalty"`
	IncompatiblePenalty         int `json:"incompatible_penalty" db:"incompatible_penalty"`
	WorkDaySurplusPenalty       int `json:"work_day_surplus_penalty" db:"work_day_surplus_penalty"`
	ConsecutiveSurplusPenalty   int `json:"consecutive_surplus_penalty" db:"consecutive_surplus_penalty"`
	SalaryShortfallPenalty      int `json:"salary_shortfall_penalty" db:"salary_shortfall_penalty"`
	SalarySurplusPenalty        int `json:"salary_surplus_penalty" db:"salary_surplus_penalty"`
	AbsDeviationPenalty         int `json:"abs_deviation_penalty" db:"abs_deviation_penalty"`

	PriorityRewardWeight  int `json:"priority_reward_weight" db:"priority_reward_weight"`
	DifficultyBonusWeight int `json:"difficulty_bonus_weight" db:"difficulty_bonus_weight"`
	PreferenceBonusWeight int `json:"preference_bonus_weight" db:"preference_bonus_weight"`
	PairingBonusWeight    int `json:"pairing_bonus_weight" db:"pairing_bonus_weight"`

	// EnforceExactHolidaysMultiplier is the x1000 multiplier spec §4.3.2
	// applies to work_day_surplus when an employee's
	// EnforceExactHolidays is set (see DESIGN.md Q1: one-sided on purpose).
	EnforceExactHolidaysMultiplier int `json:"enforce_exact_holidays_multiplier" db:"enforce_exact_holidays_multiplier"`
}

// DefaultSolverSettings returns the built-in weights used when a
// department has no SolverSettings row yet.
func DefaultSolverSettings(deptID ID) *SolverSettings {
	return &SolverSettings{
		DepartmentID:                   deptID,
		IsDefault:                      true,
		ShortfallPenalty:               50,
		UnavailableDayPenalty:          20,
		IncompatiblePenalty:            30,
		WorkDaySurplusPenalty:          10,
		ConsecutiveSurplusPenalty:      15,
		SalaryShortfallPenalty:         25,
		SalarySurplusPenalty:           5,
		AbsDeviationPenalty:            5,
		PriorityRewardWeight:           1,
		DifficultyBonusWeight:          1,
		PreferenceBonusWeight:          1,
		PairingBonusWeight:             1,
		EnforceExactHolidaysMultiplier: 1000,
	}
}
