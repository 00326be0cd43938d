package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

const (
	studentsEmailKey  = "students_email_key"
	studentsMatricKey = "students_matric_number_key"
)

var studentColumns = []string{
	"s.id", "s.first_name", "s.last_name", "s.email", "s.password", "s.department_id",
	"s.level", "s.matric_number", "s.phone", "s.address", "s.created_at", "s.updated_at",
	"d.name", "d.code",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{db: conn, sb: psql}
}

// Create inserts a student and fills in the generated ID and timestamps.
// A duplicate email maps to apperrors.ErrEmailAlreadyExists.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert("students").
		Columns("first_name", "last_name", "email", "password", "department_id", "level",
			"matric_number", "phone", "address", "created_at", "updated_at").
		Values(student.FirstName, student.LastName, student.Email, student.Password, student.DepartmentID,
			student.Level, student.MatricNumber, student.Phone, student.Address, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, studentsEmailKey):
			logger.Warn().Str("email", student.Email).Msg("Attempted to create student with duplicate email")
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, studentsMatricKey):
			return apperrors.NewConflictError("matric number already in use")
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error executing create student query")
		return apperrors.NewStoreError("create student", err)
	}

	logger.Info().Int64("studentID", student.ID).Msg("Student created successfully")
	return nil
}

// GetByID retrieves a student with their department
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id})
}

// GetByEmail retrieves a student by normalised email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.email": email})
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students s").
		Join("departments d ON d.id = s.department_id").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	dept := &models.Department{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Password, &s.DepartmentID,
		&s.Level, &s.MatricNumber, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt,
		&dept.Name, &dept.Code,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning student row")
		return nil, apperrors.NewStoreError("get student", err)
	}
	dept.ID = s.DepartmentID
	s.Department = dept
	return &s, nil
}

// EmailExists checks if an email is already registered
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("students").
		Where(squirrel.Eq{"email": email}).
		Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building email exists SQL")
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error checking email existence")
		return false, apperrors.NewStoreError("check email", err)
	}
	return exists, nil
}
