package types

import "strings"

// TaskType identifies one of the three tracked task categories
type TaskType string

const (
	TaskNotification TaskType = "notification"
	TaskRoomStatus   TaskType = "room_status"
	TaskZoneEvents   TaskType = "zone_events"
)

// AllTaskTypes lists task types in display order
var AllTaskTypes = []TaskType{TaskNotification, TaskRoomStatus, TaskZoneEvents}

// Record is one normalized row of uploaded activity data.
// Normalization (trimming, numeric defaulting) happens once at ingestion;
// everything downstream can rely on these fields as-is.
type Record struct {
	EmployeeName string `json:"employeeName"`
	EmployeeID   string `json:"empId"`
	TeamLead     string `json:"teamLead"`
	Team         string `json:"team"`
	Shift        string `json:"shift"`
	Date         string `json:"date"` // raw DD/MM/YYYY string as uploaded
	IDUsed       string `json:"idUsed"`

	NotificationCount int `json:"notificationCount"`
	RoomStatusCount   int `json:"roomStatusCount"`
	ZoneEventsCount   int `json:"zoneEventsCount"`

	NotificationAHT float64 `json:"notificationAht"`
	RoomStatusAHT   float64 `json:"roomStatusAht"`
	ZoneEventsAHT   float64 `json:"zoneEventsAht"`
}

// Count returns the task count for the given task type
func (r Record) Count(t TaskType) int {
	switch t {
	case TaskNotification:
		return r.NotificationCount
	case TaskRoomStatus:
		return r.RoomStatusCount
	case TaskZoneEvents:
		return r.ZoneEventsCount
	}
	return 0
}

// AHT returns the average handle time in seconds for the given task type
func (r Record) AHT(t TaskType) float64 {
	switch t {
	case TaskNotification:
		return r.NotificationAHT
	case TaskRoomStatus:
		return r.RoomStatusAHT
	case TaskZoneEvents:
		return r.ZoneEventsAHT
	}
	return 0
}

// DayVolume is the total task volume of this record across all task types
func (r Record) DayVolume() int {
	return r.NotificationCount + r.RoomStatusCount + r.ZoneEventsCount
}

// DayWeightedTime is the volume-weighted handle time sum of this record
func (r Record) DayWeightedTime() float64 {
	return float64(r.NotificationCount)*r.NotificationAHT +
		float64(r.RoomStatusCount)*r.RoomStatusAHT +
		float64(r.ZoneEventsCount)*r.ZoneEventsAHT
}

// Unassigned reports whether this record carries no resolvable employee ID.
// An empty ID and the spreadsheet error markers "N/A" / "#N/A" (any case)
// all count as unassigned.
func (r Record) Unassigned() bool {
	id := strings.TrimSpace(r.EmployeeID)
	if id == "" {
		return true
	}
	switch strings.ToUpper(id) {
	case "N/A", "#N/A":
		return true
	}
	return false
}

// TeamAssignmentPolicy controls which record decides an employee's displayed team
type TeamAssignmentPolicy string

const (
	// TeamPolicyLastWrite shows the team from the most recent record (default)
	TeamPolicyLastWrite TeamAssignmentPolicy = "last"
	// TeamPolicyFirstWrite shows the team from the first record seen
	TeamPolicyFirstWrite TeamAssignmentPolicy = "first"
)
