// Package filter implements the fixed-order narrowing pipeline that feeds
// the report engine: date range, then team lead, then team, then employee.
// Every stage is a pure function; the pipeline is re-run in full on every
// filter change and nothing is cached between stages.
package filter

import (
	"sort"
	"time"

	"github.com/opsboard/backend/internal/dateparse"
	"github.com/opsboard/backend/internal/types"
)

// ByDateRange keeps records whose parsed date falls within [from, to]
// (inclusive, day-truncated). Records with unparseable dates are dropped
// whenever a bound is set; with both bounds open the set passes through
// untouched.
func ByDateRange(records []types.Record, from, to *time.Time) []types.Record {
	if from == nil && to == nil {
		return records
	}

	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		d, ok := dateparse.Parse(rec.Date)
		if !ok {
			continue
		}
		if dateparse.InRange(d, from, to) {
			out = append(out, rec)
		}
	}
	return out
}

// ByTeamLead keeps records for the selected team lead; "" means all
func ByTeamLead(records []types.Record, teamLead string) []types.Record {
	if teamLead == "" {
		return records
	}

	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		if rec.TeamLead == teamLead {
			out = append(out, rec)
		}
	}
	return out
}

// ByTeam keeps records for the selected team. The team filter is only
// meaningful once a team lead is selected; without one it is a no-op.
func ByTeam(records []types.Record, teamLead, team string) []types.Record {
	if teamLead == "" || team == "" {
		return records
	}

	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		if rec.Team == team {
			out = append(out, rec)
		}
	}
	return out
}

// ByEmployee keeps records for the selected employee ID. An empty selection
// yields an empty working set: the single-employee view shows an empty
// state, never all employees merged.
func ByEmployee(records []types.Record, employeeID string) []types.Record {
	if employeeID == "" {
		return []types.Record{}
	}

	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out
}

// Apply runs the date range, team lead and team stages in order
func Apply(records []types.Record, fs types.FilterState) []types.Record {
	out := ByDateRange(records, fs.From, fs.To)
	out = ByTeamLead(out, fs.TeamLead)
	out = ByTeam(out, fs.TeamLead, fs.Team)
	return out
}

// ApplyEmployee runs the full pipeline including the employee stage
func ApplyEmployee(records []types.Record, fs types.FilterState) []types.Record {
	return ByEmployee(Apply(records, fs), fs.EmployeeID)
}

// Options derives the selectable filter values for the current state. Each
// list is regenerated from the set narrowed by the upstream stages only, so
// a stale team or employee can never be offered after the range or lead
// changes.
func Options(records []types.Record, fs types.FilterState) types.FilterOptions {
	opts := types.FilterOptions{
		TeamLeads: []string{},
		Teams:     []string{},
		Employees: []types.EmployeeOption{},
	}

	dated := ByDateRange(records, fs.From, fs.To)

	leads := make(map[string]struct{})
	for _, rec := range dated {
		if rec.TeamLead != "" {
			leads[rec.TeamLead] = struct{}{}
		}
	}
	opts.TeamLeads = sortedKeys(leads)

	// Teams are only offered once a lead is selected
	if fs.TeamLead != "" {
		byLead := ByTeamLead(dated, fs.TeamLead)

		teams := make(map[string]struct{})
		for _, rec := range byLead {
			if rec.Team != "" {
				teams[rec.Team] = struct{}{}
			}
		}
		opts.Teams = sortedKeys(teams)
	}

	working := ByTeam(ByTeamLead(dated, fs.TeamLead), fs.TeamLead, fs.Team)

	names := make(map[string]string)
	for _, rec := range working {
		if rec.Unassigned() {
			continue
		}
		if _, seen := names[rec.EmployeeID]; !seen {
			names[rec.EmployeeID] = rec.EmployeeName
		}
	}
	for id := range names {
		opts.Employees = append(opts.Employees, types.EmployeeOption{
			EmployeeID: id,
			Name:       names[id],
		})
	}
	sort.Slice(opts.Employees, func(i, j int) bool {
		return opts.Employees[i].EmployeeID < opts.Employees[j].EmployeeID
	})

	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
