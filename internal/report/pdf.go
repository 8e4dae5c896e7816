package report

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/mrsinham/diagassist/internal/analysis"
	"github.com/mrsinham/diagassist/internal/lexicon"
)

// Text colours per confidence band and urgency, as RGB.
var (
	bandColors = map[Band][3]int{
		BandHigh:   {22, 128, 61},
		BandMedium: {202, 138, 4},
		BandLow:    {185, 28, 28},
	}
	urgencyColors = map[lexicon.Urgency][3]int{
		lexicon.UrgencyHigh:   {185, 28, 28},
		lexicon.UrgencyMedium: {202, 138, 4},
		lexicon.UrgencyLow:    {22, 128, 61},
	}
)

// WritePDF writes r as a one-page PDF to path, creating parent directories.
func WritePDF(r *analysis.Report, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating pdf: %w", err)
	}
	if err := RenderPDF(r, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing pdf: %w", err)
	}
	return nil
}

// RenderPDF writes r as PDF to w. Only core fonts are used.
func RenderPDF(r *analysis.Report, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Diagnosis report", true)
	pdf.SetCreator("diagassist", true)
	pdf.AddPage()

	// Core fonts are cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, tr(text), "B", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(value), "", "L", false)
	}
	colored := func(label, value string, rgb [3]int) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(40, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
		pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	bullets := func(items []string) {
		pdf.SetFont("Helvetica", "", 11)
		for _, item := range items {
			pdf.CellFormat(6, 7, "-", "", 0, "R", false, 0, "")
			pdf.MultiCell(0, 7, tr(" "+item), "", "L", false)
		}
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Diagnosis report"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Report %s", r.ID)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(r.Timestamp.Format("2006-01-02 15:04:05 MST")), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	sa := r.SymptomAnalysis
	heading("Symptom analysis")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr("Possible conditions"), "", 1, "L", false, 0, "")
	bullets(sa.Conditions)
	band := ConfidenceBand(sa.Confidence)
	colored("Confidence", fmt.Sprintf("%s (%s)", Percent(sa.Confidence), band), bandColors[band])
	colored("Urgency", sa.Urgency.String(), urgencyColors[sa.Urgency])
	pdf.Ln(4)

	if ia := r.ImageAnalysis; ia != nil {
		heading(fmt.Sprintf("Image analysis (%s)", r.Category))
		line("Finding", ia.Finding)
		band := ConfidenceBand(ia.Confidence)
		colored("Confidence", fmt.Sprintf("%s (%s)", Percent(ia.Confidence), band), bandColors[band])
		if len(ia.Recommendations) > 0 {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, tr("Recommendations"), "", 1, "L", false, 0, "")
			bullets(ia.Recommendations)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr(Disclaimer), "T", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
