package types

// TaskBreakdown is the serialized form of one task type's metrics
type TaskBreakdown struct {
	Volume int     `json:"volume"`
	AHT    float64 `json:"aht"` // rounded to 2 decimals
}

// EmployeeMetrics holds aggregated metrics for a single employee
type EmployeeMetrics struct {
	EmployeeID string                     `json:"empId"`
	Name       string                     `json:"name"`
	Team       string                     `json:"team"`
	Volume     int                        `json:"volume"`
	AHT        float64                    `json:"aht"`
	Tasks      map[TaskType]TaskBreakdown `json:"tasks"`
}

// TeamLeadMetrics holds aggregated metrics for one (team lead, team) pair
type TeamLeadMetrics struct {
	TeamLead string                     `json:"teamLead"`
	Team     string                     `json:"team"`
	Volume   int                        `json:"volume"`
	AHT      float64                    `json:"aht"`
	Tasks    map[TaskType]TaskBreakdown `json:"tasks"`
}

// ShiftMetrics holds aggregated metrics for one shift label
type ShiftMetrics struct {
	Shift  string                     `json:"shift"`
	Volume int                        `json:"volume"`
	AHT    float64                    `json:"aht"`
	Tasks  map[TaskType]TaskBreakdown `json:"tasks"`
}

// DailyMetrics holds aggregated metrics for one calendar day.
// Date is the raw uploaded date string; the series is ordered by parsed date.
type DailyMetrics struct {
	Date   string                     `json:"date"`
	Volume int                        `json:"volume"`
	AHT    float64                    `json:"aht"`
	Tasks  map[TaskType]TaskBreakdown `json:"tasks"`
}

// TeamAssignment lists the distinct teams ever seen under a team lead
type TeamAssignment struct {
	TeamLead string   `json:"teamLead"`
	Teams    []string `json:"teams"`   // sorted
	Display  string   `json:"display"` // teams joined for table rendering
}

// IdentifierUsage reports the number of distinct non-empty "ID Used" values
// per grouping key. Cardinality only, never the contents.
type IdentifierUsage struct {
	ByTeam     map[string]int `json:"byTeam"`
	ByShift    map[string]int `json:"byShift"`
	ByTeamLead map[string]int `json:"byTeamLead"`
}

// DuplicateID reports an assigned employee ID appearing on multiple records
type DuplicateID struct {
	EmployeeID string `json:"empId"`
	Count      int    `json:"count"`
}

// Report is the complete metrics structure handed to the presentation layer.
// It is always structurally complete: zero records produce empty slices and
// initialized maps, never nil leaves.
type Report struct {
	RecordCount      int                        `json:"recordCount"`
	TotalVolume      int                        `json:"totalVolume"`
	OverallAHT       float64                    `json:"overallAht"`
	UnassignedVolume int                        `json:"unassignedVolume"`
	TaskTotals       map[TaskType]TaskBreakdown `json:"taskTotals"`
	Employees        []EmployeeMetrics          `json:"employees"` // descending total volume
	TeamLeads        []TeamLeadMetrics          `json:"teamLeads"` // by lead, then team
	Shifts           []ShiftMetrics             `json:"shifts"`    // by label
	Daily            []DailyMetrics             `json:"daily"`     // ascending parsed date
	TeamAssignments  []TeamAssignment           `json:"teamAssignments"`
	IDUsage          IdentifierUsage            `json:"idUsage"`
}

// DailyRollup is the archival form of one day's totals for one dataset
type DailyRollup struct {
	Date      string  `json:"date"`
	DatasetID string  `json:"datasetId"`
	Volume    int     `json:"volume"`
	AHT       float64 `json:"aht"`
}
