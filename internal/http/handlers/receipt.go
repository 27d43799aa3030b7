package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"wulf-order-services/internal/menu"
	"wulf-order-services/pkg/response"

	"github.com/phpdave11/gofpdf"
)

type receiptLine struct {
	Name     string
	Quantity int
	Subtotal int64
	Notes    string
}

type receiptData struct {
	Title       string
	OrderNumber string
	Customer    string
	Tables      string
	PlacedAt    string
	Items       []receiptLine
	Total       int64
	Payment     string
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func sanitizeFilename(value string) string {
	return strings.Trim(unsafeFilename.ReplaceAllString(value, "_"), "_")
}

func (h *Handler) location() *time.Location {
	if h.Location != nil {
		return h.Location
	}
	return time.UTC
}

func (h *Handler) writeReceipt(w http.ResponseWriter, r *http.Request, data receiptData) {
	out, err := renderReceiptPDF(data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Attachment(w, "application/pdf", "receipt-"+sanitizeFilename(data.OrderNumber)+".pdf", out.Bytes())
}

func renderReceiptPDF(data receiptData) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, data.Title, "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Order %s", data.OrderNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if data.Customer != "" {
		pdf.CellFormat(0, 5, data.Customer, "", 1, "C", false, 0, "")
	}
	if data.Tables != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Table %s", data.Tables), "", 1, "C", false, 0, "")
	}
	if data.PlacedAt != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Placed: %s", data.PlacedAt), "", 1, "C", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Items", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, item := range data.Items {
		pdf.CellFormat(0, 5, fmt.Sprintf("%dx %s", item.Quantity, item.Name), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Subtotal: %s", menu.FormatRupiah(item.Subtotal)), "", 1, "L", false, 0, "")
		if item.Notes != "" {
			pdf.MultiCell(0, 4, fmt.Sprintf("Notes: %s", item.Notes), "", "L", false)
		}
		pdf.Ln(1)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %s", menu.FormatRupiah(data.Total)), "T", 1, "L", false, 0, "")
	if data.Payment != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("Payment: %s", data.Payment), "", 1, "L", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
