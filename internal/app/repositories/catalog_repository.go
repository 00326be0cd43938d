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

// Cohort identifies the students a departmental offering applies to
type Cohort struct {
	DepartmentID int64
	Level        string
	Term         string
}

// CatalogRepository reads courses and their departmental offerings
type CatalogRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(conn db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: conn, sb: psql}
}

// GetOfferings returns the cohort's offerings with course details, ordered by
// course code. A nil mode returns both compulsory and elective offerings.
func (r *CatalogRepository) GetOfferings(ctx context.Context, cohort Cohort, mode *models.OfferingMode) ([]*models.DepartmentalOffering, error) {
	where := squirrel.Eq{
		"dc.department_id": cohort.DepartmentID,
		"dc.level":         cohort.Level,
		"dc.term":          cohort.Term,
	}
	if mode != nil {
		where["dc.mode"] = string(*mode)
	}

	sql, args, err := r.sb.Select("dc.department_id", "dc.level", "dc.term", "dc.course_id", "dc.mode", "c.name", "c.unit").
		From("departmental_courses dc").
		Join("courses c ON c.id = dc.course_id").
		Where(where).
		OrderBy("dc.course_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get offerings SQL")
		return nil, fmt.Errorf("failed to build get offerings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("departmentID", cohort.DepartmentID).Str("level", cohort.Level).Msg("Error querying offerings")
		return nil, apperrors.NewStoreError("get offerings", err)
	}
	defer rows.Close()

	offerings := make([]*models.DepartmentalOffering, 0)
	for rows.Next() {
		var (
			o    models.DepartmentalOffering
			c    models.Course
			mode string
		)
		if err := rows.Scan(&o.DepartmentID, &o.Level, &o.Term, &o.CourseID, &mode, &c.Name, &c.Unit); err != nil {
			logger.Error().Err(err).Msg("Error scanning offering row")
			return nil, apperrors.NewStoreError("scan offering", err)
		}
		o.Mode = models.OfferingMode(mode)
		c.ID = o.CourseID
		o.Course = &c
		offerings = append(offerings, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("get offerings", err)
	}
	return offerings, nil
}
