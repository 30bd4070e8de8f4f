// Package report implements the metrics-aggregation engine: a pure fold
// over a record collection producing the complete report structure the
// dashboard renders. Aggregation is commutative and associative per key,
// so input order never changes the output.
package report

import (
	"sort"
	"strings"

	"github.com/opsboard/backend/internal/dateparse"
	"github.com/opsboard/backend/internal/types"
)

// taskMetrics is one grouping bucket: an overall accumulator plus one per
// task type. All accumulation stays at full float precision; rounding
// happens only when the bucket is serialized into the report.
type taskMetrics struct {
	overall types.WeightedMetric
	byTask  map[types.TaskType]*types.WeightedMetric
}

func newTaskMetrics() *taskMetrics {
	byTask := make(map[types.TaskType]*types.WeightedMetric, len(types.AllTaskTypes))
	for _, t := range types.AllTaskTypes {
		byTask[t] = &types.WeightedMetric{}
	}
	return &taskMetrics{byTask: byTask}
}

func (m *taskMetrics) accumulate(rec types.Record) {
	for _, t := range types.AllTaskTypes {
		count := rec.Count(t)
		if count <= 0 {
			continue
		}
		aht := rec.AHT(t)
		m.overall.Accumulate(count, aht)
		m.byTask[t].Accumulate(count, aht)
	}
}

func (m *taskMetrics) breakdown() map[types.TaskType]types.TaskBreakdown {
	out := make(map[types.TaskType]types.TaskBreakdown, len(m.byTask))
	for t, wm := range m.byTask {
		out[t] = types.TaskBreakdown{Volume: wm.Volume, AHT: wm.RoundedAHT()}
	}
	return out
}

// employeeAcc carries an employee's bucket plus the display fields whose
// write policy differs: the name is first-seen, the team follows the
// configured assignment policy.
type employeeAcc struct {
	name    string
	team    string
	metrics *taskMetrics
}

type leadKey struct {
	lead string
	team string
}

// Build folds a record collection into a Report. The input slice is never
// mutated and no accumulator escapes this function; every call produces a
// structurally complete result even for zero records.
func Build(records []types.Record, policy types.TeamAssignmentPolicy) *types.Report {
	global := newTaskMetrics()
	unassignedVolume := 0

	employees := make(map[string]*employeeAcc)
	leads := make(map[leadKey]*taskMetrics)
	leadTeams := make(map[string]map[string]struct{})
	shifts := make(map[string]*taskMetrics)
	daily := make(map[string]*taskMetrics)

	idsByTeam := make(map[string]map[string]struct{})
	idsByShift := make(map[string]map[string]struct{})
	idsByLead := make(map[string]map[string]struct{})

	for _, rec := range records {
		global.accumulate(rec)

		if rec.Unassigned() {
			unassignedVolume += rec.DayVolume()
		} else {
			emp, ok := employees[rec.EmployeeID]
			if !ok {
				emp = &employeeAcc{
					name:    rec.EmployeeName,
					team:    rec.Team,
					metrics: newTaskMetrics(),
				}
				employees[rec.EmployeeID] = emp
			} else if policy != types.TeamPolicyFirstWrite && rec.Team != "" {
				emp.team = rec.Team
			}
			emp.metrics.accumulate(rec)
		}

		if rec.TeamLead != "" {
			key := leadKey{lead: rec.TeamLead, team: rec.Team}
			bucket, ok := leads[key]
			if !ok {
				bucket = newTaskMetrics()
				leads[key] = bucket
			}
			bucket.accumulate(rec)

			if rec.Team != "" {
				if leadTeams[rec.TeamLead] == nil {
					leadTeams[rec.TeamLead] = make(map[string]struct{})
				}
				leadTeams[rec.TeamLead][rec.Team] = struct{}{}
			}
		}

		if rec.Shift != "" {
			bucket, ok := shifts[rec.Shift]
			if !ok {
				bucket = newTaskMetrics()
				shifts[rec.Shift] = bucket
			}
			bucket.accumulate(rec)
		}

		bucket, ok := daily[rec.Date]
		if !ok {
			bucket = newTaskMetrics()
			daily[rec.Date] = bucket
		}
		bucket.accumulate(rec)

		if id := strings.TrimSpace(rec.IDUsed); id != "" {
			addIdentifier(idsByTeam, rec.Team, id)
			addIdentifier(idsByShift, rec.Shift, id)
			addIdentifier(idsByLead, rec.TeamLead, id)
		}
	}

	rep := &types.Report{
		RecordCount:      len(records),
		TotalVolume:      global.overall.Volume,
		OverallAHT:       global.overall.RoundedAHT(),
		UnassignedVolume: unassignedVolume,
		TaskTotals:       global.breakdown(),
		Employees:        buildEmployees(employees),
		TeamLeads:        buildTeamLeads(leads),
		Shifts:           buildShifts(shifts),
		Daily:            buildDaily(daily),
		TeamAssignments:  buildAssignments(leadTeams),
		IDUsage: types.IdentifierUsage{
			ByTeam:     cardinality(idsByTeam),
			ByShift:    cardinality(idsByShift),
			ByTeamLead: cardinality(idsByLead),
		},
	}
	return rep
}

func addIdentifier(sets map[string]map[string]struct{}, key, id string) {
	if key == "" {
		return
	}
	if sets[key] == nil {
		sets[key] = make(map[string]struct{})
	}
	sets[key][id] = struct{}{}
}

func cardinality(sets map[string]map[string]struct{}) map[string]int {
	out := make(map[string]int, len(sets))
	for key, set := range sets {
		out[key] = len(set)
	}
	return out
}

func buildEmployees(accs map[string]*employeeAcc) []types.EmployeeMetrics {
	out := make([]types.EmployeeMetrics, 0, len(accs))
	for id, acc := range accs {
		out = append(out, types.EmployeeMetrics{
			EmployeeID: id,
			Name:       acc.name,
			Team:       acc.team,
			Volume:     acc.metrics.overall.Volume,
			AHT:        acc.metrics.overall.RoundedAHT(),
			Tasks:      acc.metrics.breakdown(),
		})
	}
	// Descending total volume, ID as a deterministic tiebreak
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

func buildTeamLeads(accs map[leadKey]*taskMetrics) []types.TeamLeadMetrics {
	out := make([]types.TeamLeadMetrics, 0, len(accs))
	for key, m := range accs {
		out = append(out, types.TeamLeadMetrics{
			TeamLead: key.lead,
			Team:     key.team,
			Volume:   m.overall.Volume,
			AHT:      m.overall.RoundedAHT(),
			Tasks:    m.breakdown(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamLead != out[j].TeamLead {
			return out[i].TeamLead < out[j].TeamLead
		}
		return out[i].Team < out[j].Team
	})
	return out
}

func buildShifts(accs map[string]*taskMetrics) []types.ShiftMetrics {
	out := make([]types.ShiftMetrics, 0, len(accs))
	for shift, m := range accs {
		out = append(out, types.ShiftMetrics{
			Shift:  shift,
			Volume: m.overall.Volume,
			AHT:    m.overall.RoundedAHT(),
			Tasks:  m.breakdown(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shift < out[j].Shift })
	return out
}

// buildDaily emits the time series sorted ascending by parsed date. Days
// whose raw key does not parse are grouped during the fold (they still
// count toward global totals) but cannot be ordered, so they are excluded
// from the series.
func buildDaily(accs map[string]*taskMetrics) []types.DailyMetrics {
	type dated struct {
		metrics types.DailyMetrics
		day     int64
	}

	entries := make([]dated, 0, len(accs))
	for key, m := range accs {
		d, ok := dateparse.Parse(key)
		if !ok {
			continue
		}
		entries = append(entries, dated{
			day: d.Unix(),
			metrics: types.DailyMetrics{
				Date:   key,
				Volume: m.overall.Volume,
				AHT:    m.overall.RoundedAHT(),
				Tasks:  m.breakdown(),
			},
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].day < entries[j].day })

	out := make([]types.DailyMetrics, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.metrics)
	}
	return out
}

func buildAssignments(leadTeams map[string]map[string]struct{}) []types.TeamAssignment {
	out := make([]types.TeamAssignment, 0, len(leadTeams))
	for lead, teams := range leadTeams {
		sorted := make([]string, 0, len(teams))
		for team := range teams {
			sorted = append(sorted, team)
		}
		sort.Strings(sorted)
		out = append(out, types.TeamAssignment{
			TeamLead: lead,
			Teams:    sorted,
			Display:  strings.Join(sorted, ", "),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamLead < out[j].TeamLead })
	return out
}
