package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

func TestComputeRegistrationSet(t *testing.T) {
	set, err := ComputeRegistrationSet([]string{"CSC301", "CSC303"}, []string{" csc305 ", "CSC301", "", "CSC305"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CSC301", "CSC303", "CSC305"}, set)

	set, err = ComputeRegistrationSet(nil, []string{"MTH201"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MTH201"}, set)

	_, err = ComputeRegistrationSet(nil, []string{" ", ""})
	assert.ErrorIs(t, err, apperrors.ErrEmptyRegistration)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

type registrationFixture struct {
	svc  *RegistrationService
	regs *fakeRegistrations
}

func newRegistrationFixture(offerings ...*models.DepartmentalOffering) registrationFixture {
	students := newFakeStudents(
		&models.Student{ID: 7, Email: "ada@uni.edu", DepartmentID: 1, Level: "300"},
		&models.Student{ID: 8, Email: "ben@uni.edu", DepartmentID: 2, Level: "100"},
	)
	if offerings == nil {
		offerings = []*models.DepartmentalOffering{
			offering(1, "300", "1st", "CSC301", models.ModeCompulsory),
			offering(1, "300", "1st", "CSC303", models.ModeCompulsory),
			offering(1, "300", "1st", "CSC305", models.ModeElective),
			offering(1, "300", "1st", "MTH301", models.ModeElective),
			offering(1, "300", "2nd", "CSC302", models.ModeCompulsory),
		}
	}
	regs := newFakeRegistrations()
	svc := NewRegistrationService(students, &fakeCatalog{offerings: offerings}, regs, regs, FixedTerm("1st"), zerolog.Nop())
	return registrationFixture{svc: svc, regs: regs}
}

func TestRegisterCoursesAddsCompulsoryAndElectives(t *testing.T) {
	f := newRegistrationFixture()

	res, err := f.svc.RegisterCourses(context.Background(), 7, []string{"csc305"})
	require.NoError(t, err)
	assert.Equal(t, "1st", res.Term)
	assert.Equal(t, []string{"CSC301", "CSC303", "CSC305"}, res.Courses)
	assert.Equal(t, res.Courses, res.NewlyRegistered)
	assert.Empty(t, res.AlreadyRegistered)
	assert.Equal(t, []int64{7}, f.regs.locked)
}

func TestRegisterCoursesIsIdempotent(t *testing.T) {
	f := newRegistrationFixture()
	ctx := context.Background()

	_, err := f.svc.RegisterCourses(ctx, 7, []string{"CSC305"})
	require.NoError(t, err)

	res, err := f.svc.RegisterCourses(ctx, 7, []string{"CSC305", "MTH301"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MTH301"}, res.NewlyRegistered)
	assert.Equal(t, []string{"CSC301", "CSC303", "CSC305"}, res.AlreadyRegistered)

	list, err := f.svc.ListRegistrations(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "CSC301", list[0].CourseID)
	assert.Equal(t, "1st", list[0].Term)
}

func TestRegisterCoursesRejectsCoursesOutsideCohort(t *testing.T) {
	f := newRegistrationFixture()

	_, err := f.svc.RegisterCourses(context.Background(), 7, []string{"CSC305", "CSC302", "PHY999"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, []string{"CSC302", "PHY999"}, apperrors.DetailsOf(err)["unknownCourseIds"])
	assert.Empty(t, f.regs.rows)
}

func TestRegisterCoursesEmptySet(t *testing.T) {
	f := newRegistrationFixture()

	// student 8's cohort has no offerings at all
	_, err := f.svc.RegisterCourses(context.Background(), 8, nil)
	assert.ErrorIs(t, err, apperrors.ErrEmptyRegistration)
	assert.Empty(t, f.regs.rows)
}

func TestRegisterCoursesUnknownStudent(t *testing.T) {
	f := newRegistrationFixture()

	_, err := f.svc.RegisterCourses(context.Background(), 999, []string{"CSC305"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRegisterCoursesStoreFailureWritesNothing(t *testing.T) {
	f := newRegistrationFixture()
	f.regs.failWrite = errors.New("connection reset")

	_, err := f.svc.RegisterCourses(context.Background(), 7, []string{"CSC305"})
	assert.ErrorIs(t, err, apperrors.ErrStore)
	assert.Empty(t, f.regs.rows)
}

func TestRegisterCoursesConcurrentCallsRegisterOnce(t *testing.T) {
	f := newRegistrationFixture()

	const callers = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		newly int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.svc.RegisterCourses(context.Background(), 7, []string{"CSC305"})
			if assert.NoError(t, err) {
				mu.Lock()
				newly += len(res.NewlyRegistered)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, newly)
	assert.Len(t, f.regs.rows, 3)
}
