package model

import "time"

// FixedAssignment pins a member to a pattern on a date before the solve
// runs (H4): no decision variable is created for that member/date; the
// pinned shift counts toward fixed slot coverage and is copied straight
// into the solve's output.
type FixedAssignment struct {
	BaseEntity
	DepartmentID ID        `json:"department_id" db:"department_id"`
	EmployeeID   ID        `json:"employee_id" db:"employee_id"`
	PatternID    ID        `json:"pattern_id" db:"pattern_id"`
	Date         time.Time `json:"date" db:"date"`
}

// OtherAssignment marks a member as committed elsewhere on a date (e.g. a
// different department, training). No decision variable is created for
// that member/date (H5): the normalizer blocks the day exactly as it does
// for a LeaveRequest.
type OtherAssignment struct {
	BaseEntity
	DepartmentID ID        `json:"department_id" db:"department_id"`
	EmployeeID   ID        `json:"employee_id" db:"employee_id"`
	Date         time.Time `json:"date" db:"date"`
	Description  string    `json:"description,omitempty" db:"description"`
}

// RelationshipRule says whether a RelationshipGroup's members are
// penalized for sharing a slot (Incompatible) or rewarded for sharing one
// (Pairing).
type RelationshipRule string

const (
	RelationshipIncompatible RelationshipRule = "incompatible"
	RelationshipPairing      RelationshipRule = "pairing"
)

// RelationshipGroup names a set of employees subject to an incompatible or
// pairing rule across every slot.
type RelationshipGroup struct {
	BaseEntity
	DepartmentID ID               `json:"department_id" db:"department_id"`
	Rule         RelationshipRule `json:"rule" db:"rule"`
	Members      []ID             `json:"members" db:"-"`
	Weight       int              `json:"weight" db:"weight"`
}

// Assignment is one solved (member, date, pattern) triple, the solver's
// output row.
type Assignment struct {
	BaseEntity
	DepartmentID ID        `json:"department_id" db:"department_id"`
	EmployeeID   ID        `json:"employee_id" db:"employee_id"`
	PatternID    ID        `json:"pattern_id" db:"pattern_id"`
	Date         time.Time `json:"date" db:"date"`
}
