package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModels "github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
)

func smallCatalog() Catalog {
	return Catalog{
		Departments: []appModels.Department{{Name: "Computer Science", Code: "CSC"}},
		Courses:     []appModels.Course{{ID: "CSC101", Name: "Introduction to Computing", Unit: 3}},
		Offerings:   []OfferingSeed{{"CSC", "100", "1st", "CSC101", appModels.ModeCompulsory}},
	}
}

func TestCreateDefaultDataInsertsIdempotently(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO departments \(name,code\) VALUES \(\$1,\$2\) ON CONFLICT \(code\) DO NOTHING`).
		WithArgs("Computer Science", "CSC").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO courses .* ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("CSC101", "Introduction to Computing", 3).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO departmental_courses .* SELECT id, \$1::varchar, \$2::varchar, \$3::varchar, \$4::varchar FROM departments WHERE code = \$5 ON CONFLICT DO NOTHING`).
		WithArgs("100", "1st", "CSC101", "COMPULSORY", "CSC").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = CreateDefaultData(context.Background(), db.NewTransactor(mock, time.Second), smallCatalog(), zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDefaultDataRollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO departments").
		WithArgs("Computer Science", "CSC").
		WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err = CreateDefaultData(context.Background(), db.NewTransactor(mock, time.Second), smallCatalog(), zerolog.Nop())
	assert.ErrorContains(t, err, "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDefaultCatalogIsConsistent(t *testing.T) {
	c := DefaultCatalog()
	courses := make(map[string]bool)
	for _, course := range c.Courses {
		courses[course.ID] = true
	}
	departments := make(map[string]bool)
	for _, d := range c.Departments {
		departments[d.Code] = true
	}
	for _, o := range c.Offerings {
		assert.True(t, courses[o.CourseID], o.CourseID)
		assert.True(t, departments[o.DepartmentCode], o.DepartmentCode)
		assert.True(t, o.Mode.Valid())
	}
}
