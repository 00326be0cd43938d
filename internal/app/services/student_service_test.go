package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

func newStudentFixture() *StudentService {
	students := newFakeStudents(&models.Student{
		ID: 7, FirstName: "Ada", LastName: "Obi", Email: "ada@uni.edu", Password: "hash",
		DepartmentID: 1, Level: "300", Department: &models.Department{ID: 1, Name: "Computer Science", Code: "CSC"},
	})
	catalog := &fakeCatalog{offerings: []*models.DepartmentalOffering{
		offering(1, "300", "1st", "CSC301", models.ModeCompulsory),
		offering(1, "300", "1st", "CSC305", models.ModeElective),
		offering(1, "300", "2nd", "CSC302", models.ModeCompulsory),
		offering(1, "200", "1st", "CSC201", models.ModeCompulsory),
	}}
	departments := fakeDepartments{
		1: {ID: 1, Name: "Computer Science", Code: "CSC"},
		2: {ID: 2, Name: "Accounting", Code: "ACC"},
	}
	return NewStudentService(students, departments, catalog, FixedTerm("1st"), zerolog.Nop())
}

func TestGetProfile(t *testing.T) {
	svc := newStudentFixture()

	p, err := svc.GetProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	require.NotNil(t, p.Department)
	assert.Equal(t, "Computer Science", p.Department.Name)

	_, err = svc.GetProfile(context.Background(), 8)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestGetOfferableCoursesGroupsByMode(t *testing.T) {
	svc := newStudentFixture()

	res, err := svc.GetOfferableCourses(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "1st", res.Term)
	require.Len(t, res.Compulsory, 1)
	assert.Equal(t, "CSC301", res.Compulsory[0].ID)
	require.Len(t, res.Elective, 1)
	assert.Equal(t, "CSC305", res.Elective[0].ID)
	assert.Equal(t, 3, res.Elective[0].Unit)
}

func TestListDepartmentsSorted(t *testing.T) {
	svc := newStudentFixture()

	deps, err := svc.ListDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "Accounting", deps[0].Name)
}
