package report

import (
	"sort"

	"github.com/opsboard/backend/internal/types"
)

// DuplicateEmployeeIDs lists assigned employee IDs that appear on more than
// one record, with their occurrence counts. Useful for spotting double
// entries in an uploaded sheet; unassigned markers are ignored.
func DuplicateEmployeeIDs(records []types.Record) []types.DuplicateID {
	counts := make(map[string]int)
	for _, rec := range records {
		if rec.Unassigned() {
			continue
		}
		counts[rec.EmployeeID]++
	}

	out := make([]types.DuplicateID, 0)
	for id, n := range counts {
		if n > 1 {
			out = append(out, types.DuplicateID{EmployeeID: id, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}
