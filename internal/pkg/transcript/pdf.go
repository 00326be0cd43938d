package transcript

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/filestorage"
	"github.com/yigit/registrar/internal/pkg/grading"
)

// Renderer writes a Document to w. Implementations must not write anything
// to w unless the whole document was produced successfully.
type Renderer interface {
	Render(doc *Document, w io.Writer) error
}

// PDFConfig configures PDFRenderer.
type PDFConfig struct {
	// SignatureAsset names the signature image inside the asset store. Empty
	// disables the image.
	SignatureAsset string
	// Uncompressed disables stream compression, useful for inspecting output.
	Uncompressed bool
}

// PDFRenderer renders transcripts as A4 PDF documents.
type PDFRenderer struct {
	assets filestorage.AssetStore
	config PDFConfig
	logger zerolog.Logger
}

// NewPDFRenderer creates a renderer. assets may be nil.
func NewPDFRenderer(assets filestorage.AssetStore, config PDFConfig, logger zerolog.Logger) *PDFRenderer {
	return &PDFRenderer{
		assets: assets,
		config: config,
		logger: logger,
	}
}

// column widths in mm; they sum to the printable width of A4 with 10mm margins
var columns = []struct {
	title string
	width float64
	align string
}{
	{"Code", 22, "L"},
	{"Course", 88, "L"},
	{"Unit", 14, "C"},
	{"Term", 26, "C"},
	{"Score", 22, "C"},
	{"Grade", 18, "C"},
}

const (
	lineHeight = 7.0
	// nameColumn is the index of the course name in columns
	nameColumn = 1
	// maxNameLines caps how far a long course name may grow its row
	maxNameLines = 3
)

// courseNameLines wraps name to the column width. Names needing more than
// maxNameLines lines are cut and end with an ellipsis.
func courseNameLines(pdf *fpdf.Fpdf, name string, width float64) []string {
	usable := width - 2*pdf.GetCellMargin()
	lines := pdf.SplitText(name, usable)
	if len(lines) == 0 {
		return []string{""}
	}
	if len(lines) <= maxNameLines {
		return lines
	}

	lines = lines[:maxNameLines]
	last := strings.TrimRight(lines[maxNameLines-1], " ")
	for last != "" && pdf.GetStringWidth(last+"...") > usable {
		last = strings.TrimRight(last[:len(last)-1], " ")
	}
	lines[maxNameLines-1] = last + "..."
	return lines
}

// keepRowOnPage starts a new page when a row of height h would cross the
// bottom margin, so multi-line rows are never split.
func keepRowOnPage(pdf *fpdf.Fpdf, h float64) {
	_, pageHeight := pdf.GetPageSize()
	_, bottom := pdf.GetAutoPageBreak()
	if pdf.GetY()+h > pageHeight-bottom {
		pdf.AddPage()
	}
}

// Render produces the PDF in memory and copies it to w only on success.
func (r *PDFRenderer) Render(doc *Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!r.config.Uncompressed)
	pdf.SetTitle(doc.Institution+" Transcript", true)
	pdf.SetCreator("registrar", true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetMargins(10, 12, 10)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	r.header(pdf, doc, tr)
	r.studentBlock(pdf, doc, tr)
	r.record(pdf, doc, tr)
	r.summary(pdf, doc)
	r.signature(pdf, doc, tr)
	r.footerNotes(pdf, doc, tr)

	if err := pdf.Error(); err != nil {
		return apperrors.NewRenderError(err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return apperrors.NewRenderError(err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}

func (r *PDFRenderer) header(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 9, tr(doc.Institution), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Official Academic Transcript", "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func (r *PDFRenderer) studentBlock(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	fields := [][2]string{
		{"Name", doc.Student.Name},
		{"Matric No.", doc.Student.MatricNumber},
		{"Email", doc.Student.Email},
		{"Department", doc.Student.Department},
		{"Level", doc.Student.Level},
	}

	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, 6, f[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(f[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) record(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Academic Record", "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(doc.Sections) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, lineHeight, "No graded courses on record.", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		return
	}

	for _, section := range doc.Sections {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, lineHeight, tr(section.Term+" Term"), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range columns {
			pdf.CellFormat(c.width, lineHeight, c.title, "1", 0, c.align, true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, row := range section.Rows {
			score := ""
			if row.Score != nil {
				score = strconv.FormatFloat(*row.Score, 'f', -1, 64)
			}
			names := courseNameLines(pdf, tr(row.CourseName), columns[nameColumn].width)
			rowHeight := lineHeight * float64(len(names))
			keepRowOnPage(pdf, rowHeight)

			cells := []string{row.CourseCode, "", strconv.Itoa(row.Unit), tr(row.Term), score}
			for i, text := range cells {
				if i == nameColumn {
					x, y := pdf.GetXY()
					pdf.Rect(x, y, columns[i].width, rowHeight, "D")
					for n, line := range names {
						pdf.SetXY(x, y+float64(n)*lineHeight)
						pdf.CellFormat(columns[i].width, lineHeight, line, "", 0, columns[i].align, false, 0, "")
					}
					pdf.SetXY(x+columns[i].width, y)
					continue
				}
				pdf.CellFormat(columns[i].width, rowHeight, text, "1", 0, columns[i].align, false, 0, "")
			}

			c := grading.Color(row.Grade)
			pdf.SetTextColor(c.R, c.G, c.B)
			pdf.SetFont("Helvetica", "B", 9)
			last := columns[len(columns)-1]
			pdf.CellFormat(last.width, rowHeight, string(row.Grade), "1", 1, last.align, false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 9)
		}

		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("Units this term: %d", section.Units), "", 1, "R", false, 0, "")
		pdf.Ln(2)
	}
}

func (r *PDFRenderer) summary(pdf *fpdf.Fpdf, doc *Document) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Summary", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	lines := [][2]string{
		{"Total units attempted", strconv.Itoa(doc.Summary.TotalUnits)},
		{"Total grade points", strconv.FormatFloat(doc.Summary.TotalPoints, 'f', -1, 64)},
		{"CGPA", doc.Summary.CGPADisplay()},
	}
	for _, l := range lines {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(60, 6, l[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, l[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

// signature draws the signature block. A missing or unreadable image is
// logged and replaced by a blank signing line.
func (r *PDFRenderer) signature(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	if r.config.SignatureAsset != "" && r.assets != nil {
		r.drawSignatureImage(pdf)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(60, 6, "______________________________", "", 1, "L", false, 0, "")
	if doc.RegistrarName != "" {
		pdf.CellFormat(60, 6, tr(doc.RegistrarName), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(60, 6, "Registrar", "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (r *PDFRenderer) drawSignatureImage(pdf *fpdf.Fpdf) {
	name := r.config.SignatureAsset

	rc, info, err := r.assets.Open(name)
	if err != nil {
		r.logger.Warn().Err(err).Str("asset", name).Msg("Signature image unavailable, continuing without it")
		return
	}
	defer rc.Close()

	opts := fpdf.ImageOptions{ImageType: info.Format, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, rc)
	if pdf.Err() {
		r.logger.Warn().Err(pdf.Error()).Str("asset", name).Msg("Signature image could not be decoded, continuing without it")
		pdf.ClearError()
		return
	}

	pdf.ImageOptions(name, pdf.GetX(), pdf.GetY(), 40, 0, true, opts, 0, "")
}

func (r *PDFRenderer) footerNotes(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 5, "Generated on "+doc.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	if doc.Disclaimer != "" {
		pdf.MultiCell(0, 4, tr(doc.Disclaimer), "", "L", false)
	}
}
