package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// GradeRepository reads graded course results
type GradeRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(conn db.DBTX) *GradeRepository {
	return &GradeRepository{db: conn, sb: psql}
}

// GetGradedRows returns every grade record of the student that carries a
// letter grade, joined with course name and unit. Rows come back in insertion
// order so term grouping follows the order grades were recorded.
func (r *GradeRepository) GetGradedRows(ctx context.Context, studentID int64) ([]*models.GradeRecord, error) {
	sql, args, err := r.sb.Select("g.student_id", "g.course_id", "c.name", "c.unit", "g.term", "g.grade", "g.score").
		From("grades g").
		Join("courses c ON c.id = g.course_id").
		Where(squirrel.Eq{"g.student_id": studentID}).
		Where(squirrel.NotEq{"g.grade": nil}).
		OrderBy("g.id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building graded rows SQL")
		return nil, fmt.Errorf("failed to build graded rows query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying graded rows")
		return nil, apperrors.NewStoreError("get grades", err)
	}
	defer rows.Close()

	records := make([]*models.GradeRecord, 0)
	for rows.Next() {
		var g models.GradeRecord
		if err := rows.Scan(&g.StudentID, &g.CourseID, &g.CourseName, &g.Unit, &g.Term, &g.Grade, &g.Score); err != nil {
			logger.Error().Err(err).Msg("Error scanning grade row")
			return nil, apperrors.NewStoreError("scan grade", err)
		}
		records = append(records, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("get grades", err)
	}
	return records, nil
}
