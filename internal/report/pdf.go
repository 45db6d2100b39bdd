package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/prepforge/interviewharvest/internal/aggregate"
)

// WritePDF renders a printable study sheet: one section per non-empty
// category plus the study plan. Layout is intentionally simple; the JSON
// output remains the canonical artifact.
func WritePDF(res aggregate.Result, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Interview Study Sheet", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s, %d interviews, %d questions",
		res.Metadata.AnalysisDate.Format("2006-01-02"),
		res.Metadata.TotalInterviews,
		res.Metadata.TotalQuestionsExtracted), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, sec := range sectionTitles {
		qs := res.Questions[sec.cat.Key()]
		if len(qs) == 0 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, sec.title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for i, q := range qs {
			pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, q), "", "L", false)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "RECOMMENDED STUDY PLAN", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	writePlanBucket(pdf, "High priority", res.StudyPlan.HighPriority)
	writePlanBucket(pdf, "Medium priority", res.StudyPlan.MediumPriority)
	writePlanBucket(pdf, "Low priority", res.StudyPlan.LowPriority)

	return pdf.OutputFileAndClose(path)
}

func writePlanBucket(pdf *gofpdf.Fpdf, title string, items []string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.MultiCell(0, 5, "- "+item, "", "L", false)
	}
	pdf.Ln(2)
}
