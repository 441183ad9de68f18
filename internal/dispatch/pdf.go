package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
)

// PDFRenderer drives the section tree through a native PDF layout engine
// with real pagination: tall content flows onto continuation pages instead
// of clipping, and every page carries the running header and footer.
type PDFRenderer struct {
	outDir string
	log    *slog.Logger
}

// NewPDFRenderer creates a renderer writing artifacts into outDir.
func NewPDFRenderer(outDir string, logger *slog.Logger) *PDFRenderer {
	return &PDFRenderer{outDir: outDir, log: logger}
}

const (
	marginLeft  = 56.0
	marginTop   = 64.0
	marginRight = 56.0
	footerRoom  = 64.0
	lineHeight  = 16.0
)

// Render implements Renderer.
func (r *PDFRenderer) Render(ctx context.Context, doc *compose.Document) (Artifact, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, footerRoom)

	pageW, _ := pdf.GetPageSize()
	usable := pageW - marginLeft - marginRight

	headerLeft := tr(doc.HeaderLeft.Raw())
	headerRight := tr(doc.HeaderRight.Raw())
	footerLeft := tr(doc.FooterLeft.Raw())

	// Running header/footer are static per render except the page number.
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(85, 85, 85)
		pdf.SetXY(marginLeft, 28)
		pdf.CellFormat(usable/2, 12, headerLeft, "", 0, "L", false, 0, "")
		pdf.CellFormat(usable/2, 12, headerRight, "", 0, "R", false, 0, "")
		pdf.SetTextColor(26, 26, 26)
		pdf.SetY(marginTop)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(85, 85, 85)
		pdf.SetXY(marginLeft, -40)
		pdf.CellFormat(usable/2, 12, footerLeft, "", 0, "L", false, 0, "")
		pdf.CellFormat(usable/2, 12, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
		pdf.SetTextColor(26, 26, 26)
	})

	for _, sec := range doc.Sections {
		pdf.AddPage()
		for _, b := range sec.Blocks {
			r.renderBlock(pdf, tr, usable, b)
		}
	}

	name := markup.Slug(doc.Title+" "+doc.FooterLeft.Raw()) + ".pdf"
	path := filepath.Join(r.outDir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return Artifact{}, fmt.Errorf("failed to write PDF artifact: %w", err)
	}

	r.log.Info("PDF artifact written.", "path", path, "pages", pdf.PageCount())
	return Artifact{Path: path, Pages: pdf.PageCount(), Backend: "pdf"}, nil
}

func (r *PDFRenderer) renderBlock(pdf *gofpdf.Fpdf, tr func(string) string, usable float64, b compose.Block) {
	switch v := b.(type) {
	case compose.Heading:
		size := 20.0
		align := "C"
		switch {
		case v.Level == 2:
			size = 15
		case v.Level >= 3:
			size = 12
			align = "L"
		}
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(usable, size+6, tr(v.Text.Raw()), "", align, false)
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 12)

	case compose.Paragraph:
		pdf.SetFont("Helvetica", "", 12)
		align := "L"
		if v.Centered {
			align = "C"
		}
		pdf.MultiCell(usable, lineHeight, tr(v.Text.Raw()), "", align, false)
		pdf.Ln(4)

	case compose.Remark:
		pdf.SetFillColor(255, 248, 220)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(usable, lineHeight, tr(v.Text.Raw()), "1", "L", true)
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 12)

	case compose.Figure:
		// The engine never fetches remote binaries; the alt text stands in
		// for the image in this backend.
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(usable, 12, tr("["+v.Alt.Raw()+"]"), "", "C", false)
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 12)

	case compose.LabelGrid:
		pdf.SetFont("Helvetica", "", 11)
		labelW := usable * 0.35
		for _, row := range v.Rows {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(labelW, lineHeight, tr(row.Label), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(usable-labelW, lineHeight, tr(row.Value.Raw()), "", "L", false)
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 12)

	case compose.Table:
		colW := usable / float64(len(v.Header))
		pdf.SetFont("Helvetica", "B", 10)
		for _, h := range v.Header {
			pdf.CellFormat(colW, 20, tr(h), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		for _, row := range v.Rows {
			for _, cell := range row {
				pdf.CellFormat(colW, 22, tr(cell.Raw()), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 12)

	case compose.EntryGroup:
		if !v.Title.IsZero() {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(usable, 18, tr(v.Title.Raw()), "B", "L", false)
			pdf.Ln(2)
		}
		for _, e := range v.Entries {
			r.renderEntry(pdf, tr, usable, e)
		}
		pdf.SetFont("Helvetica", "", 12)

	case compose.SignatureGrid:
		r.renderSignatures(pdf, tr, usable, v)

	case compose.TOC:
		pdf.SetFont("Helvetica", "", 12)
		for _, item := range v.Items {
			pdf.CellFormat(usable-48, 20, tr(item.Title), "B", 0, "L", false, 0, "")
			pdf.CellFormat(48, 20, fmt.Sprintf("%d", item.PageNo), "B", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)

	case compose.Spacer:
		pdf.Ln(float64(v.Height))
	}
}

func (r *PDFRenderer) renderEntry(pdf *gofpdf.Fpdf, tr func(string) string, usable float64, e compose.EntryItem) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(85, 85, 85)
	pdf.CellFormat(80, 14, tr(e.Date), "", 0, "L", false, 0, "")
	pdf.SetTextColor(26, 26, 26)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(usable-80-70, 14, tr(e.Title.Raw()+"  ·  "+e.Kind.Raw()), "", 0, "L", false, 0, "")

	br, bg, bb := hexToRGB(e.StatusColor)
	pdf.SetFillColor(br, bg, bb)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(70, 14, tr(e.Status), "", 1, "C", true, 0, "")
	pdf.SetTextColor(26, 26, 26)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(usable, 14, tr(e.Description.Raw()), "", "L", false)

	if len(e.Attachments) > 0 {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(51, 51, 51)
		for _, a := range e.Attachments {
			pdf.MultiCell(usable-14, 12, tr("• "+a.Raw()), "", "L", false)
		}
		pdf.SetTextColor(26, 26, 26)
	}
	pdf.Ln(6)
}

func (r *PDFRenderer) renderSignatures(pdf *gofpdf.Fpdf, tr func(string) string, usable float64, grid compose.SignatureGrid) {
	if len(grid.Boxes) == 0 {
		return
	}
	const gap = 24.0
	boxW := (usable - gap*float64(len(grid.Boxes)-1)) / float64(len(grid.Boxes))
	y := pdf.GetY() + 36

	x := marginLeft
	for _, box := range grid.Boxes {
		pdf.Line(x, y, x+boxW, y)
		pdf.SetXY(x, y+4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(boxW, 12, tr(box.Role), "", 2, "C", false, 0, "")
		if !box.Name.IsZero() {
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(boxW, 12, tr(box.Name.Raw()), "", 0, "C", false, 0, "")
		}
		x += boxW + gap
	}
	pdf.SetXY(marginLeft, y+36)
	pdf.SetFont("Helvetica", "", 12)
}

func hexToRGB(hex string) (int, int, int) {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 128, 128, 128
	}
	return r, g, b
}
