package seed

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	appModels "github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// OfferingSeed places a course in a (department, level, term) cohort
type OfferingSeed struct {
	DepartmentCode string
	Level          string
	Term           string
	CourseID       string
	Mode           appModels.OfferingMode
}

// Catalog is the reference data loaded at startup
type Catalog struct {
	Departments []appModels.Department
	Courses     []appModels.Course
	Offerings   []OfferingSeed
}

// DefaultCatalog returns the departments, courses and offerings a fresh
// database starts with.
func DefaultCatalog() Catalog {
	return Catalog{
		Departments: []appModels.Department{
			{Name: "Computer Science", Code: "CSC"},
			{Name: "Mathematics", Code: "MTH"},
			{Name: "Accounting", Code: "ACC"},
		},
		Courses: []appModels.Course{
			{ID: "CSC101", Name: "Introduction to Computing", Unit: 3},
			{ID: "CSC102", Name: "Introduction to Programming", Unit: 3},
			{ID: "MTH101", Name: "Elementary Mathematics I", Unit: 4},
			{ID: "MTH102", Name: "Elementary Mathematics II", Unit: 4},
			{ID: "GST101", Name: "Use of English", Unit: 2},
			{ID: "ACC101", Name: "Principles of Accounting", Unit: 3},
			{ID: "CSC301", Name: "Operating Systems", Unit: 3},
			{ID: "CSC303", Name: "Compiler Construction", Unit: 3},
			{ID: "CSC305", Name: "Computer Graphics", Unit: 2},
			{ID: "MTH301", Name: "Numerical Analysis", Unit: 3},
		},
		Offerings: []OfferingSeed{
			{"CSC", "100", "1st", "CSC101", appModels.ModeCompulsory},
			{"CSC", "100", "1st", "MTH101", appModels.ModeCompulsory},
			{"CSC", "100", "1st", "GST101", appModels.ModeCompulsory},
			{"CSC", "100", "1st", "ACC101", appModels.ModeElective},
			{"CSC", "100", "2nd", "CSC102", appModels.ModeCompulsory},
			{"CSC", "100", "2nd", "MTH102", appModels.ModeCompulsory},
			{"CSC", "300", "1st", "CSC301", appModels.ModeCompulsory},
			{"CSC", "300", "1st", "CSC303", appModels.ModeCompulsory},
			{"CSC", "300", "1st", "CSC305", appModels.ModeElective},
			{"CSC", "300", "1st", "MTH301", appModels.ModeElective},
			{"MTH", "100", "1st", "MTH101", appModels.ModeCompulsory},
			{"MTH", "100", "1st", "GST101", appModels.ModeCompulsory},
			{"MTH", "100", "1st", "CSC101", appModels.ModeElective},
			{"ACC", "100", "1st", "ACC101", appModels.ModeCompulsory},
			{"ACC", "100", "1st", "GST101", appModels.ModeCompulsory},
		},
	}
}

// CreateDefaultData inserts the catalog, leaving rows that already exist
// untouched. Every statement runs in one transaction.
func CreateDefaultData(ctx context.Context, transactor *db.Transactor, catalog Catalog, lgr zerolog.Logger) error {
	lgr.Info().
		Int("departments", len(catalog.Departments)).
		Int("courses", len(catalog.Courses)).
		Int("offerings", len(catalog.Offerings)).
		Msg("Checking/Creating default catalog data...")

	return transactor.WithTransaction(ctx, func(ctx context.Context, tx db.DBTX) error {
		var inserted int64
		for _, stmt := range statements(catalog) {
			sql, args, err := stmt.ToSql()
			if err != nil {
				return fmt.Errorf("failed to build seed query: %w", err)
			}
			tag, err := tx.Exec(ctx, sql, args...)
			if err != nil {
				lgr.Error().Err(err).Str("sql", sql).Msg("Error inserting default data")
				return fmt.Errorf("seed catalog: %w", err)
			}
			inserted += tag.RowsAffected()
		}
		lgr.Info().Int64("rows", inserted).Msg("Default catalog data ensured")
		return nil
	})
}

func statements(catalog Catalog) []squirrel.Sqlizer {
	var stmts []squirrel.Sqlizer

	if len(catalog.Departments) > 0 {
		q := psql.Insert("departments").Columns("name", "code")
		for _, d := range catalog.Departments {
			q = q.Values(d.Name, d.Code)
		}
		stmts = append(stmts, q.Suffix("ON CONFLICT (code) DO NOTHING"))
	}

	if len(catalog.Courses) > 0 {
		q := psql.Insert("courses").Columns("id", "name", "unit")
		for _, c := range catalog.Courses {
			q = q.Values(c.ID, c.Name, c.Unit)
		}
		stmts = append(stmts, q.Suffix("ON CONFLICT (id) DO NOTHING"))
	}

	for _, o := range catalog.Offerings {
		sel := psql.Select("id").
			Column("?::varchar", o.Level).
			Column("?::varchar", o.Term).
			Column("?::varchar", o.CourseID).
			Column("?::varchar", string(o.Mode)).
			From("departments").
			Where(squirrel.Eq{"code": o.DepartmentCode})
		stmts = append(stmts, psql.Insert("departmental_courses").
			Columns("department_id", "level", "term", "course_id", "mode").
			Select(sel).
			Suffix("ON CONFLICT DO NOTHING"))
	}

	return stmts
}
