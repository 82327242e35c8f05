package model

import "time"

// LeaveRequest blocks a member from any assignment on a date (H3).
type LeaveRequest struct {
	BaseEntity
	DepartmentID ID        `json:"department_id" db:"department_id"`
	EmployeeID   ID        `json:"employee_id" db:"employee_id"`
	Date         time.Time `json:"date" db:"date"`
	Reason       string    `json:"reason,omitempty" db:"reason"`
}

// DesignatedHoliday blocks every member of the department from assignment
// on a date (H3), regardless of individual leave requests.
type DesignatedHoliday struct {
	BaseEntity
	DepartmentID ID        `json:"department_id" db:"department_id"`
	Date         time.Time `json:"date" db:"date"`
	Name         string    `json:"name,omitempty" db:"name"`
}

// PaidLeave blocks a member from assignment on a date the same way
// LeaveRequest does (H3), but is accounted separately so paid-leave days
// can be reported without being confused with unpaid leave.
type PaidLeave struct {
	BaseEntity
	DepartmentID ID        `json:"department_id" db:"department_id"`
	EmployeeID   ID        `json:"employee_id" db:"employee_id"`
	Date         time.Time `json:"date" db:"date"`
}
