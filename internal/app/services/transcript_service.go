package services

import (
	"bytes"
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/grading"
	"github.com/yigit/registrar/internal/pkg/transcript"
)

// TranscriptSettings carries the institution text printed on every transcript
type TranscriptSettings struct {
	Institution   string
	RegistrarName string
	Disclaimer    string
	TermOrder     []string
}

// TranscriptService assembles and renders student transcripts
type TranscriptService struct {
	students StudentStore
	grades   GradeStore
	renderer transcript.Renderer
	settings TranscriptSettings
	now      func() time.Time
	logger   zerolog.Logger
}

// NewTranscriptService creates a new TranscriptService
func NewTranscriptService(students StudentStore, grades GradeStore, renderer transcript.Renderer, settings TranscriptSettings, logger zerolog.Logger) *TranscriptService {
	return &TranscriptService{
		students: students,
		grades:   grades,
		renderer: renderer,
		settings: settings,
		now:      time.Now,
		logger:   logger,
	}
}

// Generate renders the student's transcript as PDF. Nothing is returned
// unless rendering completed.
func (s *TranscriptService) Generate(ctx context.Context, studentID int64) ([]byte, error) {
	var (
		student *models.Student
		records []*models.GradeRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, err = s.students.GetByID(gctx, studentID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.grades.GetGradedRows(gctx, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := transcript.Build(transcriptStudent(student), transcriptRows(records), transcript.Options{
		TermOrder:     s.settings.TermOrder,
		Institution:   s.settings.Institution,
		RegistrarName: s.settings.RegistrarName,
		Disclaimer:    s.settings.Disclaimer,
		GeneratedAt:   s.now(),
	})

	var buf bytes.Buffer
	if err := s.renderer.Render(doc, &buf); err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Transcript rendering failed")
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int("courses", len(records)).
		Int("bytes", buf.Len()).
		Msg("Transcript generated")
	return buf.Bytes(), nil
}

func transcriptStudent(s *models.Student) transcript.Student {
	out := transcript.Student{
		Name:  s.FullName(),
		Email: s.Email,
		Level: s.Level,
	}
	if s.MatricNumber != nil {
		out.MatricNumber = *s.MatricNumber
	}
	if s.Department != nil {
		out.Department = s.Department.Name
	}
	return out
}

func transcriptRows(records []*models.GradeRecord) []transcript.Row {
	rows := make([]transcript.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, transcript.Row{
			CourseCode: r.CourseID,
			CourseName: r.CourseName,
			Unit:       r.Unit,
			Term:       r.Term,
			Score:      r.Score,
			Grade:      grading.ParseLetter(r.Grade),
		})
	}
	return rows
}
