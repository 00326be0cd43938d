package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// StudentService is the profile and catalog surface the controller needs
type StudentService interface {
	GetProfile(ctx context.Context, studentID int64) (*dto.StudentResponse, error)
	GetOfferableCourses(ctx context.Context, studentID int64) (*dto.OfferableCoursesResponse, error)
}

// RegistrationService is the course registration surface the controller needs
type RegistrationService interface {
	RegisterCourses(ctx context.Context, studentID int64, electiveIDs []string) (*dto.RegistrationResult, error)
	ListRegistrations(ctx context.Context, studentID int64) ([]dto.RegisteredCourse, error)
}

// GradeService computes grade point averages
type GradeService interface {
	GetCGPA(ctx context.Context, studentID int64) (*dto.CGPAResponse, error)
}

// TranscriptService renders transcripts
type TranscriptService interface {
	Generate(ctx context.Context, studentID int64) ([]byte, error)
}

// StudentController serves the authenticated student's own records
type StudentController struct {
	students      StudentService
	registrations RegistrationService
	grades        GradeService
	transcripts   TranscriptService
	logger        zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	students StudentService,
	registrations RegistrationService,
	grades GradeService,
	transcripts TranscriptService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		students:      students,
		registrations: registrations,
		grades:        grades,
		transcripts:   transcripts,
		logger:        logger,
	}
}

// Profile returns the student's profile
// @Summary Get profile
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid or expired token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/profile [get]
func (c *StudentController) Profile(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}
	profile, err := c.students.GetProfile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// OfferableCourses lists the courses offered to the student this term
// @Summary List offerable courses
// @Description Compulsory and elective courses for the student's department, level and the current term
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.OfferableCoursesResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /student/offerable-courses [get]
func (c *StudentController) OfferableCourses(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}
	courses, err := c.students.GetOfferableCourses(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// RegisterCourses registers the student's compulsory courses and chosen electives
// @Summary Register courses
// @Description Registers every compulsory course plus the chosen electives for the current term. Repeat calls are idempotent.
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.RegisterCoursesRequest false "Chosen electives"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResult}
// @Failure 400 {object} dto.ErrorResponse "Empty registration or course not offered"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} dto.ErrorResponse "Registration could not be stored"
// @Router /student/register-courses [post]
func (c *StudentController) RegisterCourses(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}

	var req dto.RegisterCoursesRequest
	if ctx.Request.ContentLength != 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.registrations.RegisterCourses(ctx.Request.Context(), studentID, req.ElectiveCourseIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// Registrations lists the student's registrations for the current term
// @Summary List registrations
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.RegisteredCourse}
// @Router /student/registrations [get]
func (c *StudentController) Registrations(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}
	regs, err := c.registrations.ListRegistrations(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(regs))
}

// CGPA returns the student's cumulative grade point average
// @Summary Get CGPA
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CGPAResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /student/cgpa [get]
func (c *StudentController) CGPA(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}
	cgpa, err := c.grades.GetCGPA(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(cgpa))
}

// Transcript streams the student's transcript as a PDF attachment
// @Summary Download transcript
// @Tags student
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} dto.ErrorResponse "Transcript could not be generated"
// @Router /student/transcript [get]
func (c *StudentController) Transcript(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}
	pdf, err := c.transcripts.Generate(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=transcript.pdf")
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

func (c *StudentController) studentID(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.StudentID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenMissing)
	}
	return id, ok
}
