// Package report renders printable documents with gofpdf.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"schooladmin/internal/domain"
)

type column struct {
	title string
	width float64
	align string
}

var scoreColumns = []column{
	{"Student", 50, "L"},
	{"Quiz", 60, "L"},
	{"Score", 18, "C"},
	{"Subject", 25, "L"},
	{"Type", 20, "C"},
	{"Date", 40, "L"},
}

type scoresPDF struct {
	title string
	loc   *time.Location
}

// NewScoresPDF returns a ScoreReportRenderer producing an A4 landscape table.
// Dates are printed in loc (UTC when nil).
func NewScoresPDF(title string, loc *time.Location) domain.ScoreReportRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &scoresPDF{title: title, loc: loc}
}

func (r *scoresPDF) Render(w io.Writer, scores []*domain.Score, generatedAt time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(r.title, false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(r.title))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated "+generatedAt.In(r.loc).Format("Jan 2, 2006 3:04 PM"))
	pdf.Ln(10)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range scoreColumns {
			pdf.CellFormat(c.width, 8, c.title, "1", 0, c.align, true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}
	header()

	if len(scores) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(tableWidth(), 8, "No scores recorded yet.", "1", 1, "C", false, 0, "")
	}
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, s := range scores {
		if pdf.GetY()+8 > pageHeight-bottom-15 {
			pdf.AddPage()
			header()
		}
		cells := []string{
			s.StudentName,
			s.QuizName,
			strconv.Itoa(s.Score),
			titleCase(string(s.Subject)),
			string(s.Type),
			s.CreatedAt.In(r.loc).Format("01/02/2006, 3:04 PM"),
		}
		for i, text := range cells {
			c := scoreColumns[i]
			pdf.CellFormat(c.width, 8, fit(pdf, tr(text), c.width-2), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write scores pdf: %w", err)
	}
	return nil
}

func tableWidth() float64 {
	var total float64
	for _, c := range scoreColumns {
		total += c.width
	}
	return total
}

// fit truncates text with an ellipsis so it fits in width at the current font.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
