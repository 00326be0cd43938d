package transcript

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/pkg/filestorage"
	"github.com/yigit/registrar/internal/pkg/grading"
)

type memAssets map[string][]byte

func (m memAssets) Stat(name string) (*filestorage.AssetInfo, error) {
	data, ok := m[name]
	if !ok {
		return nil, filestorage.ErrAssetNotFound
	}
	return &filestorage.AssetInfo{Name: name, FileSize: int64(len(data)), Format: "PNG"}, nil
}

func (m memAssets) Open(name string) (io.ReadCloser, *filestorage.AssetInfo, error) {
	info, err := m.Stat(name)
	if err != nil {
		return nil, nil, err
	}
	return io.NopCloser(bytes.NewReader(m[name])), info, nil
}

func testDocument(rows []Row) *Document {
	return Build(Student{Name: "Ada Obi", MatricNumber: "U2021/001", Department: "Computer Science", Level: "300"}, rows, Options{
		Institution:   "Example University",
		RegistrarName: "J. Doe",
		Disclaimer:    "This transcript is not valid without the registrar's seal.",
		GeneratedAt:   time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	})
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 2))))
	return buf.Bytes()
}

func TestPDFRendererWritesDocument(t *testing.T) {
	r := NewPDFRenderer(nil, PDFConfig{Uncompressed: true}, zerolog.Nop())

	var out bytes.Buffer
	require.NoError(t, r.Render(testDocument(sampleRows()), &out))

	body := out.String()
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	assert.Contains(t, body, "Academic Record")
	assert.Contains(t, body, "Calculus II")
	assert.Contains(t, body, "(3.44)")
	assert.Contains(t, body, "Units this term: 5")
}

func TestPDFRendererEmptyRecord(t *testing.T) {
	r := NewPDFRenderer(nil, PDFConfig{Uncompressed: true}, zerolog.Nop())

	var out bytes.Buffer
	require.NoError(t, r.Render(testDocument(nil), &out))

	assert.Contains(t, out.String(), "No graded courses on record.")
	assert.Contains(t, out.String(), "(0.00)")
}

func TestPDFRendererMissingSignatureDegrades(t *testing.T) {
	var logs bytes.Buffer
	r := NewPDFRenderer(memAssets{}, PDFConfig{SignatureAsset: "signature.png", Uncompressed: true}, zerolog.New(&logs))

	var out bytes.Buffer
	require.NoError(t, r.Render(testDocument(sampleRows()), &out))

	assert.Contains(t, out.String(), "Registrar")
	assert.Contains(t, logs.String(), "Signature image unavailable")
}

func TestPDFRendererCorruptSignatureDegrades(t *testing.T) {
	var logs bytes.Buffer
	assets := memAssets{"signature.png": []byte("definitely not a png")}
	r := NewPDFRenderer(assets, PDFConfig{SignatureAsset: "signature.png"}, zerolog.New(&logs))

	var out bytes.Buffer
	require.NoError(t, r.Render(testDocument(sampleRows()), &out))

	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	assert.Contains(t, logs.String(), "could not be decoded")
}

func TestPDFRendererEmbedsSignature(t *testing.T) {
	var logs bytes.Buffer
	assets := memAssets{"signature.png": tinyPNG(t)}
	r := NewPDFRenderer(assets, PDFConfig{SignatureAsset: "signature.png", Uncompressed: true}, zerolog.New(&logs))

	var out bytes.Buffer
	require.NoError(t, r.Render(testDocument(sampleRows()), &out))

	assert.Contains(t, out.String(), "/Subtype /Image")
	assert.Empty(t, logs.String())
}

func nameTestPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 9)
	return pdf
}

func TestCourseNameLinesFitColumn(t *testing.T) {
	pdf := nameTestPDF()
	width := columns[nameColumn].width
	usable := width - 2*pdf.GetCellMargin()

	short := courseNameLines(pdf, "Operating Systems", width)
	assert.Equal(t, []string{"Operating Systems"}, short)

	name := "Advanced Topics in Distributed Systems, Fault Tolerance and Consensus Protocols"
	lines := courseNameLines(pdf, name, width)
	require.Greater(t, len(lines), 1)
	require.LessOrEqual(t, len(lines), maxNameLines)
	for _, line := range lines {
		assert.LessOrEqual(t, pdf.GetStringWidth(line), usable, line)
	}
	assert.True(t, strings.HasPrefix(name, strings.TrimSpace(lines[0])))
}

func TestCourseNameLinesTruncatesWithEllipsis(t *testing.T) {
	pdf := nameTestPDF()
	width := columns[nameColumn].width

	lines := courseNameLines(pdf, strings.Repeat("Interdisciplinary Laboratory Practice ", 12), width)
	require.Len(t, lines, maxNameLines)
	assert.True(t, strings.HasSuffix(lines[maxNameLines-1], "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(lines[maxNameLines-1]), width-2*pdf.GetCellMargin())
}

func TestPDFRendererWrapsLongCourseNames(t *testing.T) {
	r := NewPDFRenderer(nil, PDFConfig{Uncompressed: true}, zerolog.Nop())
	rows := sampleRows()
	rows = append(rows, Row{
		CourseCode: "CSC499",
		CourseName: "Advanced Topics in Distributed Systems, Fault Tolerance and Consensus Protocols",
		Unit:       6,
		Term:       "2nd",
		Grade:      grading.A,
	})

	var out bytes.Buffer
	require.NoError(t, r.Render(testDocument(rows), &out))
	assert.Contains(t, out.String(), "Advanced Topics")
	assert.Contains(t, out.String(), "Protocols")
}
