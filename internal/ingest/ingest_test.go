package ingest

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDecodeJSON(t *testing.T) {
	payload := []byte(`[
		{
			"Employee Name": "Alice",
			"EMP ID": "E001",
			"TL": "Lead A",
			"Team": 7,
			"Shift": "Morning",
			"Date": "01/03/2025",
			"ID Used": "ID-100",
			"Total Notification": 10,
			"Total Room Update": 20,
			"Total Zone Update": 5,
			"AHT - Notification": 5.5,
			"AHT - Room Status": 8,
			"AHT - Zone Events": 4
		}
	]`)

	records, err := DecodeJSON(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.EmployeeName != "Alice" || rec.EmployeeID != "E001" || rec.TeamLead != "Lead A" {
		t.Errorf("unexpected identity fields: %+v", rec)
	}
	if rec.Team != "7" {
		t.Errorf("expected numeric team coerced to %q, got %q", "7", rec.Team)
	}
	if rec.NotificationCount != 10 || rec.RoomStatusCount != 20 || rec.ZoneEventsCount != 5 {
		t.Errorf("unexpected counts: %+v", rec)
	}
	if rec.NotificationAHT != 5.5 || rec.RoomStatusAHT != 8 || rec.ZoneEventsAHT != 4 {
		t.Errorf("unexpected AHTs: %+v", rec)
	}
}

func TestDecodeJSONSanitizesBOMAndControlChars(t *testing.T) {
	payload := append([]byte{0xEF, 0xBB, 0xBF}, []byte("[{\"EMP ID\": \"E0\x0101\"}]")...)

	records, err := DecodeJSON(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].EmployeeID != "E001" {
		t.Errorf("expected control chars stripped, got %q", records[0].EmployeeID)
	}
}

func TestDecodeJSONMalformed(t *testing.T) {
	if _, err := DecodeJSON([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDecodeJSONNumericDefaulting(t *testing.T) {
	payload := []byte(`[
		{
			"EMP ID": "E001",
			"Total Notification": "garbage",
			"Total Room Update": -5,
			"AHT - Notification": "n/a",
			"AHT - Room Status": -1.5
		}
	]`)

	records, err := DecodeJSON(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	rec := records[0]
	if rec.NotificationCount != 0 {
		t.Errorf("expected non-numeric count defaulted to 0, got %d", rec.NotificationCount)
	}
	if rec.RoomStatusCount != 0 {
		t.Errorf("expected negative count clamped to 0, got %d", rec.RoomStatusCount)
	}
	if rec.NotificationAHT != 0 {
		t.Errorf("expected non-numeric AHT defaulted to 0, got %f", rec.NotificationAHT)
	}
	if rec.RoomStatusAHT != 0 {
		t.Errorf("expected negative AHT clamped to 0, got %f", rec.RoomStatusAHT)
	}
	if rec.ZoneEventsCount != 0 || rec.ZoneEventsAHT != 0 {
		t.Errorf("expected missing fields defaulted to 0: %+v", rec)
	}
}

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to build cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("failed to set row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Employee Name", "EMP ID", "TL", "Team", "Shift", "Date", "Total Notification", "AHT - Notification"},
		{"Alice", "E001", "Lead A", "1", "Morning", "01/03/2025", 10, 5},
		{"Bob", "E002", "Lead B", "2", "Evening", "02/03/2025", 20, 8},
	})

	records, err := DecodeWorkbook(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].EmployeeName != "Alice" || records[0].NotificationCount != 10 {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].EmployeeID != "E002" || records[1].NotificationAHT != 8 {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestDecodeWorkbookShortRows(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Employee Name", "EMP ID", "Total Notification"},
		{"Alice"},
	})

	records, err := DecodeWorkbook(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].EmployeeName != "Alice" || records[0].EmployeeID != "" || records[0].NotificationCount != 0 {
		t.Errorf("unexpected record from short row: %+v", records[0])
	}
}

func TestDecodeDispatch(t *testing.T) {
	workbook := buildWorkbook(t, [][]interface{}{
		{"EMP ID"},
		{"E001"},
	})

	t.Run("xlsx extension", func(t *testing.T) {
		records, err := Decode("upload.xlsx", workbook)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(records) != 1 || records[0].EmployeeID != "E001" {
			t.Errorf("unexpected records: %v", records)
		}
	})

	t.Run("zip magic without extension", func(t *testing.T) {
		records, err := Decode("upload.bin", workbook)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("expected 1 record, got %d", len(records))
		}
	})

	t.Run("json fallback", func(t *testing.T) {
		records, err := Decode("rows.json", []byte(`[{"EMP ID":"E002"}]`))
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(records) != 1 || records[0].EmployeeID != "E002" {
			t.Errorf("unexpected records: %v", records)
		}
	})

	t.Run("garbage payload fails", func(t *testing.T) {
		if _, err := Decode("rows.json", []byte("not anything")); err == nil {
			t.Error("expected error for undecodable payload")
		}
	})
}
