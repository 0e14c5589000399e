package exporter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tableflip.dev/campusboard/pkg/filter"
	"tableflip.dev/campusboard/pkg/notice"
)

// Sheet describes a printable notice sheet.
type Sheet struct {
	Title   string
	Notices []notice.Notice
	Events  []notice.Event
}

// PDF renders the sheet: notices in display order (urgent first) followed by
// an events table.
func PDF(s Sheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := s.Title
	if title == "" {
		title = "Campus Notice Board"
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper(tr(title)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Notices", "B", 1, "", false, 0, "")
	pdf.Ln(2)

	notices := append([]notice.Notice(nil), s.Notices...)
	filter.Sort(notices)
	for _, n := range notices {
		pdf.SetFont("Arial", "B", 11)
		if n.Urgent {
			pdf.SetTextColor(200, 0, 0)
			pdf.CellFormat(0, 6, tr("URGENT: "+n.Title), "", 1, "", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		} else {
			pdf.CellFormat(0, 6, tr(n.Title), "", 1, "", false, 0, "")
		}
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s | %s | %s", notice.FormatDate(n.Date), n.DepartmentName(), n.Category)), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(n.Description), "", "", false)
		pdf.Ln(3)
	}

	if len(s.Events) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Events", "B", 1, "", false, 0, "")
		pdf.Ln(2)

		headers := []string{"Date", "Time", "Title", "Venue"}
		widths := []float64{35, 25, 80, 50}
		pdf.SetFont("Arial", "B", 10)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, e := range s.Events {
			row := []string{notice.FormatDate(e.Date), notice.FormatTime(e.Time), e.Title, e.Venue}
			for i, v := range row {
				pdf.CellFormat(widths[i], 7, tr(v), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
