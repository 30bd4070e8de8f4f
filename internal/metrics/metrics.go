package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Ingestion metrics
	UploadsTotal         int64
	UploadFailuresTotal  int64
	RecordsIngestedTotal int64
	ParseDefaultsTotal   int64

	// Report metrics
	ReportsBuiltTotal  int64
	lastReportDuration time.Duration
	datasetRecords     int
	datasetEmployees   int
	datasetTeamLeads   int

	// WebSocket metrics
	WebSocketConnectionsTotal    int64
	WebSocketDisconnectionsTotal int64
	WebSocketMessagesTotal       int64
	activeConnections            int64

	// Archival metrics
	RollupsArchivedTotal int64
	ArchiveErrorsTotal   int64

	// HTTP metrics
	httpRequestsTotal    map[string]map[int]int64 // endpoint -> status -> count
	httpRequestDurations map[string][]float64     // endpoint -> durations

	// Timing
	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			httpRequestsTotal:    make(map[string]map[int]int64),
			httpRequestDurations: make(map[string][]float64),
			startTime:            time.Now(),
		}
	})
	return instance
}

// RecordUpload increments the accepted upload counter
func (m *Metrics) RecordUpload() {
	m.mu.Lock()
	m.UploadsTotal++
	m.mu.Unlock()
}

// RecordUploadFailure increments the rejected upload counter
func (m *Metrics) RecordUploadFailure() {
	m.mu.Lock()
	m.UploadFailuresTotal++
	m.mu.Unlock()
}

// RecordRecordsIngested adds to the ingested record counter
func (m *Metrics) RecordRecordsIngested(n int) {
	m.mu.Lock()
	m.RecordsIngestedTotal += int64(n)
	m.mu.Unlock()
}

// RecordParseDefault counts a malformed field defaulted to zero
func (m *Metrics) RecordParseDefault() {
	m.mu.Lock()
	m.ParseDefaultsTotal++
	m.mu.Unlock()
}

// RecordReportBuild records a completed aggregation pass
func (m *Metrics) RecordReportBuild(duration time.Duration) {
	m.mu.Lock()
	m.ReportsBuiltTotal++
	m.lastReportDuration = duration
	m.mu.Unlock()
}

// UpdateDatasetStats updates gauges describing the current dataset
func (m *Metrics) UpdateDatasetStats(records, employees, teamLeads int) {
	m.mu.Lock()
	m.datasetRecords = records
	m.datasetEmployees = employees
	m.datasetTeamLeads = teamLeads
	m.mu.Unlock()
}

// RecordWebSocketConnect increments connection counters
func (m *Metrics) RecordWebSocketConnect() {
	m.mu.Lock()
	m.WebSocketConnectionsTotal++
	m.activeConnections++
	m.mu.Unlock()
}

// RecordWebSocketDisconnect increments disconnection counter
func (m *Metrics) RecordWebSocketDisconnect() {
	m.mu.Lock()
	m.WebSocketDisconnectionsTotal++
	m.activeConnections--
	m.mu.Unlock()
}

// RecordWebSocketMessage increments the broadcast message counter
func (m *Metrics) RecordWebSocketMessage() {
	m.mu.Lock()
	m.WebSocketMessagesTotal++
	m.mu.Unlock()
}

// RecordRollupArchived counts a daily rollup persisted to the archive store
func (m *Metrics) RecordRollupArchived() {
	m.mu.Lock()
	m.RollupsArchivedTotal++
	m.mu.Unlock()
}

// RecordArchiveError counts a failed archive write
func (m *Metrics) RecordArchiveError() {
	m.mu.Lock()
	m.ArchiveErrorsTotal++
	m.mu.Unlock()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(endpoint string, statusCode int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.httpRequestsTotal[endpoint] == nil {
		m.httpRequestsTotal[endpoint] = make(map[int]int64)
	}
	m.httpRequestsTotal[endpoint][statusCode]++

	// Keep last 100 durations for percentile calculation
	if len(m.httpRequestDurations[endpoint]) >= 100 {
		m.httpRequestDurations[endpoint] = m.httpRequestDurations[endpoint][1:]
	}
	m.httpRequestDurations[endpoint] = append(m.httpRequestDurations[endpoint], duration.Seconds())
}

// GetActiveConnections returns current WebSocket connections
func (m *Metrics) GetActiveConnections() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeConnections
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		// Helper to write metric
		write := func(name string, value interface{}, labels ...string) {
			labelStr := ""
			if len(labels) > 0 {
				labelStr = "{"
				for i := 0; i < len(labels); i += 2 {
					if i > 0 {
						labelStr += ","
					}
					labelStr += labels[i] + "=\"" + labels[i+1] + "\""
				}
				labelStr += "}"
			}

			switch v := value.(type) {
			case int:
				w.Write([]byte(name + labelStr + " " + strconv.Itoa(v) + "\n"))
			case int64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatInt(v, 10) + "\n"))
			case float64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatFloat(v, 'f', 6, 64) + "\n"))
			}
		}

		// System metrics
		write("opsboard_uptime_seconds", time.Since(m.startTime).Seconds())

		// Ingestion metrics
		write("opsboard_uploads_total", m.UploadsTotal)
		write("opsboard_upload_failures_total", m.UploadFailuresTotal)
		write("opsboard_records_ingested_total", m.RecordsIngestedTotal)
		write("opsboard_parse_defaults_total", m.ParseDefaultsTotal)

		// Report metrics
		write("opsboard_reports_built_total", m.ReportsBuiltTotal)
		write("opsboard_report_build_duration_seconds", m.lastReportDuration.Seconds())
		write("opsboard_dataset_records", m.datasetRecords)
		write("opsboard_dataset_employees", m.datasetEmployees)
		write("opsboard_dataset_team_leads", m.datasetTeamLeads)

		// WebSocket metrics
		write("opsboard_websocket_connections_total", m.WebSocketConnectionsTotal)
		write("opsboard_websocket_disconnections_total", m.WebSocketDisconnectionsTotal)
		write("opsboard_websocket_active_connections", m.activeConnections)
		write("opsboard_websocket_messages_total", m.WebSocketMessagesTotal)

		// Archival metrics
		write("opsboard_rollups_archived_total", m.RollupsArchivedTotal)
		write("opsboard_archive_errors_total", m.ArchiveErrorsTotal)

		// HTTP metrics
		for endpoint, statusCodes := range m.httpRequestsTotal {
			for status, count := range statusCodes {
				write("opsboard_http_requests_total", count, "endpoint", endpoint, "status", strconv.Itoa(status))
			}
		}
	}
}
