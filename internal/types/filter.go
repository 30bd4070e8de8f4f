package types

import "time"

// FilterState carries the dashboard's filter controls as explicit values.
// A nil bound leaves that side of the date range open; an empty TeamLead or
// Team means "all"; an empty EmployeeID selects nothing (the single-employee
// view starts empty by design).
type FilterState struct {
	From       *time.Time
	To         *time.Time
	TeamLead   string
	Team       string
	EmployeeID string
}

// EmployeeOption is one entry of the employee filter dropdown
type EmployeeOption struct {
	EmployeeID string `json:"empId"`
	Name       string `json:"name"`
}

// FilterOptions are the selectable values for the current working set.
// Each list is derived from the set already narrowed by the upstream
// filter stages, so stale combinations can never be offered.
type FilterOptions struct {
	TeamLeads []string         `json:"teamLeads"`
	Teams     []string         `json:"teams"`
	Employees []EmployeeOption `json:"employees"`
}
