package types

import "time"

// DatasetMeta describes the currently loaded record collection
type DatasetMeta struct {
	DatasetID   string    `json:"datasetId"`
	Filename    string    `json:"filename"`
	UploadedAt  time.Time `json:"uploadedAt"`
	RecordCount int       `json:"recordCount"`
}

// ReportMessage is the envelope pushed to dashboard clients whenever the
// working dataset changes
type ReportMessage struct {
	Type      string      `json:"type"` // always "report"
	Timestamp time.Time   `json:"timestamp"`
	Dataset   DatasetMeta `json:"dataset"`
	Report    *Report     `json:"report"`
}
