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

// RegistrationRepository handles course_registrations rows
type RegistrationRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(conn db.DBTX) *RegistrationRepository {
	return &RegistrationRepository{db: conn, sb: psql}
}

// WithTx returns a copy of the repository bound to tx
func (r *RegistrationRepository) WithTx(tx db.DBTX) *RegistrationRepository {
	return &RegistrationRepository{db: tx, sb: r.sb}
}

// LockStudent takes a transaction-scoped advisory lock keyed by student ID.
// Concurrent registrations for the same student queue behind it; it is
// released on commit or rollback.
func (r *RegistrationRepository) LockStudent(ctx context.Context, studentID int64) error {
	sql, args, err := r.sb.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(?)", studentID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build advisory lock query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error acquiring registration lock")
		return apperrors.NewStoreError("lock student", err)
	}
	return nil
}

// InsertMany registers courseIDs for the student in term. Rows that already
// exist are left untouched; the IDs actually inserted are returned.
func (r *RegistrationRepository) InsertMany(ctx context.Context, studentID int64, term string, courseIDs []string) ([]string, error) {
	if len(courseIDs) == 0 {
		return []string{}, nil
	}

	q := r.sb.Insert("course_registrations").
		Columns("student_id", "course_id", "term")
	for _, id := range courseIDs {
		q = q.Values(studentID, id, term)
	}
	sql, args, err := q.
		Suffix("ON CONFLICT (student_id, course_id, term) DO NOTHING RETURNING course_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert registrations SQL")
		return nil, fmt.Errorf("failed to build insert registrations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Str("term", term).Msg("Error inserting registrations")
		return nil, apperrors.NewStoreError("insert registrations", err)
	}
	defer rows.Close()

	inserted := make([]string, 0, len(courseIDs))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewStoreError("scan registration", err)
		}
		inserted = append(inserted, id)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error inserting registrations")
		return nil, apperrors.NewStoreError("insert registrations", err)
	}
	return inserted, nil
}

// ListForTerm returns the student's registrations in term with course details
func (r *RegistrationRepository) ListForTerm(ctx context.Context, studentID int64, term string) ([]*models.Registration, error) {
	sql, args, err := r.sb.Select("cr.id", "cr.student_id", "cr.course_id", "cr.term", "cr.registered_at", "c.name", "c.unit").
		From("course_registrations cr").
		Join("courses c ON c.id = cr.course_id").
		Where(squirrel.Eq{"cr.student_id": studentID, "cr.term": term}).
		OrderBy("cr.course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list registrations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error listing registrations")
		return nil, apperrors.NewStoreError("list registrations", err)
	}
	defer rows.Close()

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		var (
			reg models.Registration
			c   models.Course
		)
		if err := rows.Scan(&reg.ID, &reg.StudentID, &reg.CourseID, &reg.Term, &reg.RegisteredAt, &c.Name, &c.Unit); err != nil {
			return nil, apperrors.NewStoreError("scan registration", err)
		}
		c.ID = reg.CourseID
		reg.Course = &c
		registrations = append(registrations, &reg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list registrations", err)
	}
	return registrations, nil
}
