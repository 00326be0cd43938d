package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/db"
)

// Services defined in this package:
// - AuthService: signup, login, logout and token authentication
// - StudentService: profile, departments and offerable courses
// - RegistrationService: course registration for the current term
// - GradeService: cumulative grade point average
// - TranscriptService: PDF transcript generation

// StudentStore is the student persistence used by the services
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// DepartmentStore reads departments
type DepartmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
}

// CatalogStore reads departmental offerings
type CatalogStore interface {
	GetOfferings(ctx context.Context, cohort repositories.Cohort, mode *models.OfferingMode) ([]*models.DepartmentalOffering, error)
}

// RegistrationStore writes and reads course registrations
type RegistrationStore interface {
	LockStudent(ctx context.Context, studentID int64) error
	InsertMany(ctx context.Context, studentID int64, term string, courseIDs []string) ([]string, error)
	ListForTerm(ctx context.Context, studentID int64, term string) ([]*models.Registration, error)
}

// RegistrationUnit runs fn with a RegistrationStore bound to one transaction.
// Returning an error from fn rolls every write back.
type RegistrationUnit interface {
	Run(ctx context.Context, fn func(ctx context.Context, store RegistrationStore) error) error
}

// GradeStore reads graded course results
type GradeStore interface {
	GetGradedRows(ctx context.Context, studentID int64) ([]*models.GradeRecord, error)
}

// TokenStore records revoked access tokens
type TokenStore interface {
	Revoke(ctx context.Context, jti uuid.UUID, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error)
}

// TermResolver supplies the academic term registrations apply to
type TermResolver interface {
	CurrentTerm(ctx context.Context) (string, error)
}

// FixedTerm resolves to the same term on every call
type FixedTerm string

// CurrentTerm implements TermResolver
func (t FixedTerm) CurrentTerm(context.Context) (string, error) {
	return string(t), nil
}

// txRegistrations binds the registration repository to a transaction per Run
type txRegistrations struct {
	transactor *db.Transactor
	repo       *repositories.RegistrationRepository
}

// NewRegistrationUnit wraps repo so each Run executes inside its own transaction
func NewRegistrationUnit(transactor *db.Transactor, repo *repositories.RegistrationRepository) RegistrationUnit {
	return &txRegistrations{transactor: transactor, repo: repo}
}

func (u *txRegistrations) Run(ctx context.Context, fn func(ctx context.Context, store RegistrationStore) error) error {
	return u.transactor.WithTransaction(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, u.repo.WithTx(tx))
	})
}
