package booking

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"luxe_haven/internal/domain"
)

// Summary is what goes on the confirmation PDF.
type Summary struct {
	Hotel   string
	Booking domain.Booking
	Guest   string
	Issued  time.Time
}

func nightsLabel(n int) string {
	if n == 1 {
		return "1 night"
	}
	return fmt.Sprintf("%d nights", n)
}

// RenderPDF lays out a one-page A4 booking summary.
func RenderPDF(s Summary) ([]byte, error) {
	b := s.Booking
	if b.ConfirmationCode == "" {
		return nil, errors.New("pdf: booking has no confirmation code")
	}
	if s.Hotel == "" {
		s.Hotel = "Luxe Haven"
	}
	if s.Issued.IsZero() {
		s.Issued = time.Now()
	}
	guest := s.Guest
	if guest == "" {
		guest = b.User.FullName()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(s.Hotel+" booking "+b.ConfirmationCode, false)
	pdf.SetCreator(s.Hotel, false)
	pdf.AddPage()

	pdf.SetFillColor(24, 38, 66)
	pdf.Rect(0, 0, 210, 32, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(15, 10)
	pdf.CellFormat(180, 10, s.Hotel, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetX(15)
	pdf.CellFormat(180, 6, "Booking Confirmation", "", 1, "L", false, 0, "")

	pdf.SetTextColor(30, 30, 30)
	pdf.SetXY(15, 42)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(180, 6, "Confirmation code", "", 1, "L", false, 0, "")
	pdf.SetX(15)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(180, 10, b.ConfirmationCode, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	rows := [][2]string{
		{"Room", b.Room.DisplayName()},
		{"Check-in", b.StartDate.Long()},
		{"Check-out", b.EndDate.Long()},
		{"Duration", nightsLabel(b.Nights())},
		{"Total", "$" + domain.FormatPrice(b.TotalPrice)},
	}
	if guest != "" {
		rows = append(rows, [2]string{"Guest", guest})
	}
	if b.PaymentMethod != "" {
		rows = append(rows, [2]string{"Payment", string(b.PaymentMethod)})
	}
	if b.Status != "" {
		rows = append(rows, [2]string{"Status", b.Status})
	}
	for _, r := range rows {
		pdf.SetX(15)
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(45, 9, r[0], "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(135, 9, r[1], "B", 1, "L", false, 0, "")
	}

	if b.AccessPin != "" {
		pdf.Ln(8)
		pdf.SetX(15)
		pdf.SetFillColor(240, 236, 224)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(180, 12, "Room access PIN: "+b.AccessPin, "", 1, "C", true, 0, "")
	}

	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 5, "Please present this confirmation at the front desk on arrival.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Issued "+s.Issued.Format("Jan 2, 2006 15:04"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PDFFilename is the download name for b.
func PDFFilename(b domain.Booking) string {
	return "booking-" + b.ConfirmationCode + ".pdf"
}
