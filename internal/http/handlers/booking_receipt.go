package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"mavuso/internal/domain/models"
	"mavuso/internal/http/middleware"
	"mavuso/internal/services"
	"mavuso/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/phpdave11/gofpdf"
)

// GET /api/bookings/:id/receipt (auth, guest or host)
func GetBookingReceiptPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", nil)
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.GetForUser(middleware.CurrentUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	pdfBytes, filename, err := buildReceiptPDF(booking)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build receipt PDF", err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func buildReceiptPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MAVUSO BOOKING RECEIPT")
	pdf.Ln(12)

	receiptNo := fmt.Sprintf("RCP-%d", b.ID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Receipt no : "+receiptNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+utils.NowUTC().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Booking details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Experience     : %s", safe(b.ExperienceTitle, "-")),
		fmt.Sprintf("Date           : %s", safe(b.SlotDate, "-")),
		fmt.Sprintf("Time           : %s - %s", safe(b.SlotStartTime, "-"), safe(b.SlotEndTime, "-")),
		fmt.Sprintf("Guests         : %d", b.GuestsCount),
		fmt.Sprintf("Status         : %s", safe(b.Status, "-")),
		fmt.Sprintf("Payment status : %s", safe(b.PaymentStatus, "-")),
		fmt.Sprintf("Booking code   : #%d", b.ID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(b.TotalPrice))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Keep this receipt for your records. Present the booking code at the start of the experience.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d_%s.pdf", b.ID, safeFilenamePart(b.ExperienceTitle))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

var filenameCleaner = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func safeFilenamePart(s string) string {
	out := filenameCleaner.ReplaceAllString(s, "_")
	if len(out) > 40 {
		out = out[:40]
	}
	if out == "" {
		out = "booking"
	}
	return out
}
