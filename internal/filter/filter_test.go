package filter

import (
	"testing"
	"time"

	"github.com/opsboard/backend/internal/types"
)

func date(day, month, year int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

func testRecords() []types.Record {
	return []types.Record{
		{EmployeeID: "E001", EmployeeName: "Alice", TeamLead: "Lead A", Team: "1", Date: "01/03/2025"},
		{EmployeeID: "E002", EmployeeName: "Bob", TeamLead: "Lead A", Team: "2", Date: "02/03/2025"},
		{EmployeeID: "E003", EmployeeName: "Carol", TeamLead: "Lead B", Team: "3", Date: "03/03/2025"},
		{EmployeeID: "N/A", TeamLead: "Lead B", Team: "3", Date: "03/03/2025"},
		{EmployeeID: "E004", EmployeeName: "Dave", TeamLead: "Lead A", Team: "1", Date: "bad-date"},
	}
}

func TestByDateRange(t *testing.T) {
	records := testRecords()

	t.Run("both bounds open passes through", func(t *testing.T) {
		out := ByDateRange(records, nil, nil)
		if len(out) != len(records) {
			t.Errorf("expected %d records, got %d", len(records), len(out))
		}
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		out := ByDateRange(records, date(1, 3, 2025), date(2, 3, 2025))
		if len(out) != 2 {
			t.Fatalf("expected 2 records, got %d", len(out))
		}
		if out[0].EmployeeID != "E001" || out[1].EmployeeID != "E002" {
			t.Errorf("unexpected records: %v", out)
		}
	})

	t.Run("unparseable dates dropped when bound set", func(t *testing.T) {
		out := ByDateRange(records, date(1, 1, 2025), nil)
		for _, rec := range out {
			if rec.Date == "bad-date" {
				t.Error("record with unparseable date should be dropped")
			}
		}
	})
}

func TestByTeamLead(t *testing.T) {
	records := testRecords()

	if out := ByTeamLead(records, ""); len(out) != len(records) {
		t.Errorf("empty lead should pass through, got %d records", len(out))
	}

	out := ByTeamLead(records, "Lead A")
	if len(out) != 3 {
		t.Errorf("expected 3 records for Lead A, got %d", len(out))
	}
}

func TestByTeam(t *testing.T) {
	records := testRecords()

	// Team filter is inert without a lead selection
	if out := ByTeam(records, "", "1"); len(out) != len(records) {
		t.Errorf("team filter without lead should pass through, got %d records", len(out))
	}

	out := ByTeam(ByTeamLead(records, "Lead A"), "Lead A", "1")
	if len(out) != 2 {
		t.Errorf("expected 2 records for Lead A team 1, got %d", len(out))
	}
}

func TestByEmployee(t *testing.T) {
	records := testRecords()

	// Empty selection yields an empty set, not everything
	out := ByEmployee(records, "")
	if len(out) != 0 {
		t.Errorf("expected empty set for empty selection, got %d records", len(out))
	}

	out = ByEmployee(records, "E002")
	if len(out) != 1 || out[0].EmployeeName != "Bob" {
		t.Errorf("unexpected result for E002: %v", out)
	}
}

func TestApplyCascade(t *testing.T) {
	records := testRecords()

	fs := types.FilterState{
		From:     date(1, 3, 2025),
		To:       date(3, 3, 2025),
		TeamLead: "Lead A",
		Team:     "2",
	}

	out := Apply(records, fs)
	if len(out) != 1 || out[0].EmployeeID != "E002" {
		t.Errorf("unexpected cascade result: %v", out)
	}
}

func TestApplyEmployee(t *testing.T) {
	records := testRecords()

	fs := types.FilterState{TeamLead: "Lead A", EmployeeID: "E001"}
	out := ApplyEmployee(records, fs)
	if len(out) != 1 || out[0].EmployeeID != "E001" {
		t.Errorf("unexpected employee result: %v", out)
	}

	// Employee under a different lead is unreachable
	fs = types.FilterState{TeamLead: "Lead A", EmployeeID: "E003"}
	if out := ApplyEmployee(records, fs); len(out) != 0 {
		t.Errorf("expected no records for E003 under Lead A, got %d", len(out))
	}
}

func TestOptions(t *testing.T) {
	records := testRecords()

	t.Run("no selection", func(t *testing.T) {
		opts := Options(records, types.FilterState{})

		if len(opts.TeamLeads) != 2 || opts.TeamLeads[0] != "Lead A" || opts.TeamLeads[1] != "Lead B" {
			t.Errorf("unexpected leads: %v", opts.TeamLeads)
		}
		// Teams only appear once a lead is selected
		if len(opts.Teams) != 0 {
			t.Errorf("expected no teams without lead selection, got %v", opts.Teams)
		}
		// Unassigned records never appear in the employee dropdown
		for _, e := range opts.Employees {
			if e.EmployeeID == "N/A" {
				t.Error("unassigned marker offered as employee option")
			}
		}
	})

	t.Run("lead selected", func(t *testing.T) {
		opts := Options(records, types.FilterState{TeamLead: "Lead A"})

		if len(opts.Teams) != 2 || opts.Teams[0] != "1" || opts.Teams[1] != "2" {
			t.Errorf("unexpected teams for Lead A: %v", opts.Teams)
		}
		if len(opts.Employees) != 3 {
			t.Errorf("expected 3 employees for Lead A, got %d", len(opts.Employees))
		}
	})

	t.Run("options regenerate after range change", func(t *testing.T) {
		fs := types.FilterState{
			From:     date(3, 3, 2025),
			To:       date(3, 3, 2025),
			TeamLead: "Lead A",
		}
		opts := Options(records, fs)

		// Lead A has no records on 03/03, so neither teams nor employees remain
		if len(opts.Teams) != 0 {
			t.Errorf("expected stale teams to disappear, got %v", opts.Teams)
		}
		if len(opts.Employees) != 0 {
			t.Errorf("expected stale employees to disappear, got %v", opts.Employees)
		}
		if len(opts.TeamLeads) != 1 || opts.TeamLeads[0] != "Lead B" {
			t.Errorf("expected only Lead B in range, got %v", opts.TeamLeads)
		}
	})

	t.Run("employees sorted by id", func(t *testing.T) {
		opts := Options(records, types.FilterState{})
		for i := 1; i < len(opts.Employees); i++ {
			if opts.Employees[i-1].EmployeeID > opts.Employees[i].EmployeeID {
				t.Errorf("employees not sorted: %v", opts.Employees)
			}
		}
	})
}
