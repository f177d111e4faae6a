package reports

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"pitchbook/permissions"
	"pitchbook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// ExportBookingsPDF handles GET /api/reports/bookings/pdf — requires
// reports.export. A booking-per-row table with the summary totals at the
// bottom.
func ExportBookingsPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "reports.export") {
		permissions.WriteError(w, permissions.Denied("reports.export"))
		return
	}

	from, to := rangeFromQuery(r)
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	bookings, err := loadRange(ctx, from, to)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	summary := BuildSummary(from, to, bookings)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Bookings %s to %s", from, to))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 8, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(28, 8, "Time", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 8, "Field", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 8, "Booked by", "1", 0, "", false, 0, "")
	pdf.CellFormat(22, 8, "Status", "1", 0, "", false, 0, "")
	pdf.CellFormat(20, 8, "Fee", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, b := range bookings {
		name := b.UserName
		if b.External {
			name = b.ClientName + " (ext)"
		}
		fee := ""
		if b.CustomPrice != nil {
			fee = fmt.Sprintf("%d", *b.CustomPrice)
		} else if b.FeeEstimate != nil {
			fee = fmt.Sprintf("%d", *b.FeeEstimate)
		}
		pdf.CellFormat(25, 7, b.Date, "1", 0, "", false, 0, "")
		pdf.CellFormat(28, 7, b.StartTime+"-"+b.EndTime, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, b.FieldID, "1", 0, "", false, 0, "")
		pdf.CellFormat(50, 7, name, "1", 0, "", false, 0, "")
		pdf.CellFormat(22, 7, b.Status, "1", 0, "", false, 0, "")
		pdf.CellFormat(20, 7, fee, "1", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %d bookings, fees %d (paid %d)",
		summary.Total, summary.EstimatedFees, summary.PaidFees))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("bookings-%s-%s.pdf", from, to)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
