package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/repositories"
)

// StudentService serves student-facing read operations
type StudentService struct {
	students    StudentStore
	departments DepartmentStore
	catalog     CatalogStore
	terms       TermResolver
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, departments DepartmentStore, catalog CatalogStore, terms TermResolver, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students:    students,
		departments: departments,
		catalog:     catalog,
		terms:       terms,
		logger:      logger,
	}
}

// GetProfile returns the student's profile with department
func (s *StudentService) GetProfile(ctx context.Context, studentID int64) (*dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// ListDepartments returns every department, for signup forms
func (s *StudentService) ListDepartments(ctx context.Context) ([]dto.DepartmentData, error) {
	departments, err := s.departments.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentData, 0, len(departments))
	for _, d := range departments {
		out = append(out, dto.DepartmentData{ID: d.ID, Name: d.Name, Code: d.Code})
	}
	return out, nil
}

// GetOfferableCourses returns the current term's offerings for the student's
// department and level, split into compulsory and elective.
func (s *StudentService) GetOfferableCourses(ctx context.Context, studentID int64) (*dto.OfferableCoursesResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	term, err := s.terms.CurrentTerm(ctx)
	if err != nil {
		return nil, err
	}

	offerings, err := s.catalog.GetOfferings(ctx, repositories.Cohort{
		DepartmentID: student.DepartmentID,
		Level:        student.Level,
		Term:         term,
	}, nil)
	if err != nil {
		return nil, err
	}

	resp := &dto.OfferableCoursesResponse{
		Term:       term,
		Level:      student.Level,
		Compulsory: make([]dto.OfferableCourse, 0),
		Elective:   make([]dto.OfferableCourse, 0),
	}
	for _, o := range offerings {
		course := dto.OfferableCourse{ID: o.CourseID, Mode: string(o.Mode)}
		if o.Course != nil {
			course.Name = o.Course.Name
			course.Unit = o.Course.Unit
		}
		if o.Mode == models.ModeCompulsory {
			resp.Compulsory = append(resp.Compulsory, course)
		} else {
			resp.Elective = append(resp.Elective, course)
		}
	}
	return resp, nil
}
