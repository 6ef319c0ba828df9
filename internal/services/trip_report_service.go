package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"drowsiness-dashboard/internal/domain/models"
	"drowsiness-dashboard/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TripReportService renders the trip listing as a printable PDF.
type TripReportService struct {
	Listing   TripListingService
	RequestID string
	Now       func() time.Time
}

func (s TripReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateListingPDF fetches the listing and renders it. Listing errors are
// returned unchanged.
func (s TripReportService) GenerateListingPDF(ctx context.Context) ([]byte, string, error) {
	listing := s.Listing
	listing.RequestID = s.RequestID
	rows, err := listing.GetTripListing(ctx)
	if err != nil {
		return nil, "", err
	}
	generated := s.now()
	utils.LogEvent(s.RequestID, "report", "generate_listing_pdf", fmt.Sprintf("rows=%d", len(rows)))
	return buildListingPDF(rows, Summarize(rows), generated)
}

var reportColumns = []struct {
	title string
	width float64
}{
	{"ID", 20},
	{"Date / Time", 55},
	{"Blinks", 35},
	{"Head nods", 35},
	{"Yawns", 35},
}

func buildListingPDF(rows []models.TripListingRow, sum models.ListingSummary, generated time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP REPORT")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+utils.FormatDateTime(generated))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range reportColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	if len(rows) == 0 {
		pdf.CellFormat(180, 8, "No trips recorded", "1", 1, "C", false, 0, "")
	}
	for _, r := range rows {
		cells := []string{
			strconv.FormatInt(r.ID, 10),
			r.Timestamp,
			strconv.Itoa(r.BlinkCount),
			strconv.Itoa(r.HeadNodCount),
			strconv.Itoa(r.YawnCount),
		}
		for i, v := range cells {
			pdf.CellFormat(reportColumns[i].width, 7, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Trips: %d   Blinks: %d   Head nods: %d   Yawns: %d",
		sum.Trips, sum.TotalBlinks, sum.TotalHeadNods, sum.TotalYawns))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TRIPS_%s.pdf", generated.Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
