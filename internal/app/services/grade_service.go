package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/grading"
)

// GradeService computes grade point averages
type GradeService struct {
	grades GradeStore
	logger zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(grades GradeStore, logger zerolog.Logger) *GradeService {
	return &GradeService{grades: grades, logger: logger}
}

// GetCGPA computes the student's CGPA over all graded courses. A student
// with no graded courses has a CGPA of exactly 0.
func (s *GradeService) GetCGPA(ctx context.Context, studentID int64) (*dto.CGPAResponse, error) {
	records, err := s.grades.GetGradedRows(ctx, studentID)
	if err != nil {
		return nil, err
	}

	result := grading.ComputeCGPA(gradingRows(records))
	s.logger.Debug().Int64("studentID", studentID).Int("courses", len(records)).Float64("cgpa", result.CGPA).Msg("CGPA computed")

	return &dto.CGPAResponse{
		CGPA:        result.CGPA,
		CGPADisplay: grading.Format(result.CGPA),
		TotalUnits:  result.TotalUnits,
		TotalPoints: result.TotalPoints,
		CourseCount: len(records),
	}, nil
}

func gradingRows(records []*models.GradeRecord) []grading.Row {
	rows := make([]grading.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, grading.Row{Grade: grading.ParseLetter(r.Grade), Unit: r.Unit})
	}
	return rows
}
