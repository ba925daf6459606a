package report

import "context"

// ExportRequest asks for the caller-visible attendance records as an xlsx
// workbook mailed to the recipient.
type ExportRequest struct {
	Recipient string `json:"recipient"`
}

// ExportResponse acknowledges that the export was queued.
type ExportResponse struct {
	Recipient string `json:"recipient"`
	Records   int    `json:"records"`
}

// Service builds and delivers attendance reports.
type Service interface {
	// ExportAttendance renders all records visible to the caller into a
	// workbook and emails it. Delivery runs in the background; a delivery
	// failure is logged, not returned.
	ExportAttendance(ctx context.Context, req ExportRequest) (ExportResponse, error)
}
