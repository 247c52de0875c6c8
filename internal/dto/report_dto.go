package dto

// ─── Request / Response DTOs for async report export ─────────────────────────

type SalesReportRequest struct {
	// From / To bound the export window (inclusive); empty = all time.
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to"   validate:"omitempty,datetime=2006-01-02"`
}

type SalesReportResponse struct {
	// FileName is the xlsx the worker will produce under the report storage
	// path; poll GET /v1/reports/{file_name} until it is ready.
	FileName string `json:"file_name"`
	Status   string `json:"status"` // queued
}
