// Package ingest decodes uploaded activity files into normalized records.
// Two formats are accepted: an XLSX workbook whose first sheet's first row
// holds the column headers, and a JSON array of row objects. All field
// normalization and numeric defaulting happens here, once, so downstream
// code never re-parses.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/opsboard/backend/internal/metrics"
	"github.com/opsboard/backend/internal/types"
)

// Expected column headers, case- and spacing-sensitive
const (
	ColEmployeeName    = "Employee Name"
	ColEmployeeID      = "EMP ID"
	ColTeam            = "Team"
	ColTeamLead        = "TL"
	ColShift           = "Shift"
	ColDate            = "Date"
	ColIDUsed          = "ID Used"
	ColNotification    = "Total Notification"
	ColRoomUpdate      = "Total Room Update"
	ColZoneUpdate      = "Total Zone Update"
	ColNotificationAHT = "AHT - Notification"
	ColRoomStatusAHT   = "AHT - Room Status"
	ColZoneEventsAHT   = "AHT - Zone Events"
)

var xlsxMagic = []byte{0x50, 0x4b, 0x03, 0x04} // zip container

// Decode parses an uploaded payload into records, choosing the workbook
// decoder for .xlsx files (or zip-magic payloads) and the JSON decoder
// otherwise. A decode error means the whole payload is unusable; callers
// are expected to reset to an empty collection rather than keep stale data.
func Decode(filename string, data []byte) ([]types.Record, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") || bytes.HasPrefix(data, xlsxMagic) {
		return DecodeWorkbook(data)
	}
	return DecodeJSON(data)
}

// DecodeWorkbook reads the first sheet of an XLSX workbook, treating the
// first row as column headers and every following row as one record.
func DecodeWorkbook(data []byte) ([]types.Record, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]types.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]any, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				fields[header] = row[i]
			}
		}
		records = append(records, fromFields(fields))
	}

	metrics.Get().RecordRecordsIngested(len(records))
	return records, nil
}

// DecodeJSON parses a JSON array of row objects keyed by column name. The
// payload is sanitized first: a UTF-8 byte-order mark and stray control
// characters (common in exported text files) are stripped before parsing.
func DecodeJSON(data []byte) ([]types.Record, error) {
	cleaned := sanitize(data)

	var rows []map[string]any
	if err := json.Unmarshal(cleaned, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON payload: %w", err)
	}

	records := make([]types.Record, 0, len(rows))
	for _, fields := range rows {
		records = append(records, fromFields(fields))
	}

	metrics.Get().RecordRecordsIngested(len(records))
	return records, nil
}

// sanitize strips a leading BOM and control characters except tab, newline
// and carriage return
func sanitize(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	out := make([]byte, 0, len(data))
	for _, b := range data {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			continue
		}
		out = append(out, b)
	}
	return out
}

// fromFields builds one normalized record from a header-keyed row
func fromFields(fields map[string]any) types.Record {
	return types.Record{
		EmployeeName: asString(fields[ColEmployeeName]),
		EmployeeID:   asString(fields[ColEmployeeID]),
		TeamLead:     asString(fields[ColTeamLead]),
		Team:         asTeam(fields[ColTeam]),
		Shift:        asString(fields[ColShift]),
		Date:         asString(fields[ColDate]),
		IDUsed:       asString(fields[ColIDUsed]),

		NotificationCount: asCount(fields[ColNotification]),
		RoomStatusCount:   asCount(fields[ColRoomUpdate]),
		ZoneEventsCount:   asCount(fields[ColZoneUpdate]),

		NotificationAHT: asAHT(fields[ColNotificationAHT]),
		RoomStatusAHT:   asAHT(fields[ColRoomStatusAHT]),
		ZoneEventsAHT:   asAHT(fields[ColZoneEventsAHT]),
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		// JSON numbers: render integers without a decimal point
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// asTeam coerces team numbers to canonical integer strings so "7", 7 and
// 7.0 all group together
func asTeam(v any) string {
	s := asString(v)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// asCount parses a task count, defaulting to 0 for missing or non-numeric
// values. Counts never go negative.
func asCount(v any) int {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return int(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f < 0 {
			metrics.Get().RecordParseDefault()
			return 0
		}
		return int(f)
	case nil:
		return 0
	default:
		metrics.Get().RecordParseDefault()
		return 0
	}
}

// asAHT parses a handle-time value in seconds, defaulting to 0.0 for
// missing or non-numeric values
func asAHT(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f < 0 {
			metrics.Get().RecordParseDefault()
			return 0
		}
		return f
	case nil:
		return 0
	default:
		metrics.Get().RecordParseDefault()
		return 0
	}
}
