package export

import (
	"time"

	"github.com/jung-kurt/gofpdf"

	"wallestreet/research"
)

const (
	pdfMarginX   = 20.0
	pdfTextWidth = 170.0
	pdfLineStep  = 7.0
	pdfPageFloor = 270.0 // past this the next response starts a fresh page
)

// DefaultPDFName returns the conventional download name for a bundle
// exported on the given day.
func DefaultPDFName(now time.Time) string {
	return "research-results-" + now.Format("2006-01-02") + ".pdf"
}

// WritePDF renders the bundle as a paginated A4 document at path: a title
// block with the query and generation time, then each response as a name
// heading, the wrapped content and its bulleted key points.
func WritePDF(bundle *research.ResultBundle, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	y := 20.0

	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(pdfMarginX, y, "Research Results")
	y += 10

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(pdfMarginX, y, tr("Query: "+bundle.Query))
	y += 10
	pdf.Text(pdfMarginX, y, "Generated on: "+bundle.GeneratedAt.Format("Jan 2, 2006 3:04 PM"))
	y += 20

	for _, resp := range bundle.Responses {
		pdf.SetFont("Helvetica", "", 14)
		pdf.Text(pdfMarginX, y, tr(resp.Agent))
		y += 10

		pdf.SetFont("Helvetica", "", 12)
		for _, line := range pdf.SplitText(tr(resp.Content), pdfTextWidth) {
			pdf.Text(pdfMarginX, y, line)
			y += pdfLineStep
		}

		if len(resp.Points) > 0 {
			pdf.Text(pdfMarginX, y, "Key Points:")
			y += 10
			for _, point := range resp.Points {
				for _, line := range pdf.SplitText(tr("• "+point), pdfTextWidth) {
					pdf.Text(pdfMarginX, y, line)
					y += pdfLineStep
				}
			}
		}

		y += 10
		if y > pdfPageFloor {
			pdf.AddPage()
			y = 20
		}
	}

	return pdf.OutputFileAndClose(path)
}
