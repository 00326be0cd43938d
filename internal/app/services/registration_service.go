package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/validation"
)

// ComputeRegistrationSet returns the union of the compulsory and elective
// course IDs. IDs are trimmed and upper-cased, blanks are dropped, duplicates
// collapse and the result is sorted. An empty union is
// apperrors.ErrEmptyRegistration.
func ComputeRegistrationSet(compulsory, electives []string) ([]string, error) {
	seen := make(map[string]struct{}, len(compulsory)+len(electives))
	for _, list := range [][]string{compulsory, electives} {
		for _, raw := range list {
			if id := validation.NormalizeCourseCode(raw); id != "" {
				seen[id] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil, apperrors.ErrEmptyRegistration
	}

	set := make([]string, 0, len(seen))
	for id := range seen {
		set = append(set, id)
	}
	sort.Strings(set)
	return set, nil
}

// RegistrationService registers students for the current term's courses
type RegistrationService struct {
	students StudentStore
	catalog  CatalogStore
	unit     RegistrationUnit
	reader   RegistrationStore
	terms    TermResolver
	logger   zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService. reader serves
// lookups outside a transaction.
func NewRegistrationService(
	students StudentStore,
	catalog CatalogStore,
	unit RegistrationUnit,
	reader RegistrationStore,
	terms TermResolver,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		students: students,
		catalog:  catalog,
		unit:     unit,
		reader:   reader,
		terms:    terms,
		logger:   logger,
	}
}

// RegisterCourses registers the student for every compulsory course of their
// cohort plus the chosen electives. The write is all-or-nothing and repeat
// calls are idempotent: courses already registered are reported, not re-added.
// Electives not offered to the student's cohort this term fail validation
// (400) with the sorted IDs under details["unknownCourseIds"].
func (s *RegistrationService) RegisterCourses(ctx context.Context, studentID int64, electiveIDs []string) (*dto.RegistrationResult, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	term, err := s.terms.CurrentTerm(ctx)
	if err != nil {
		return nil, err
	}

	cohort := repositories.Cohort{DepartmentID: student.DepartmentID, Level: student.Level, Term: term}
	offerings, err := s.catalog.GetOfferings(ctx, cohort, nil)
	if err != nil {
		return nil, err
	}

	offered := make(map[string]struct{}, len(offerings))
	compulsory := make([]string, 0, len(offerings))
	for _, o := range offerings {
		offered[o.CourseID] = struct{}{}
		if o.Mode == models.ModeCompulsory {
			compulsory = append(compulsory, o.CourseID)
		}
	}

	if unknown := unknownCourses(electiveIDs, offered); len(unknown) > 0 {
		return nil, apperrors.NewValidationError("some courses are not offered to your department, level and term").
			WithDetails(map[string]interface{}{"unknownCourseIds": unknown})
	}

	set, err := ComputeRegistrationSet(compulsory, electiveIDs)
	if err != nil {
		return nil, err
	}

	var inserted []string
	err = s.unit.Run(ctx, func(ctx context.Context, store RegistrationStore) error {
		if err := store.LockStudent(ctx, studentID); err != nil {
			return err
		}
		inserted, err = store.InsertMany(ctx, studentID, term, set)
		return err
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Str("term", term).Msg("Course registration failed")
		if apperrors.Is(err, apperrors.ErrStore) {
			return nil, err
		}
		return nil, apperrors.NewStoreError("register courses", err)
	}

	newly := make(map[string]struct{}, len(inserted))
	for _, id := range inserted {
		newly[id] = struct{}{}
	}
	result := &dto.RegistrationResult{
		Term:              term,
		Courses:           set,
		NewlyRegistered:   make([]string, 0, len(inserted)),
		AlreadyRegistered: make([]string, 0, len(set)-len(inserted)),
	}
	for _, id := range set {
		if _, ok := newly[id]; ok {
			result.NewlyRegistered = append(result.NewlyRegistered, id)
		} else {
			result.AlreadyRegistered = append(result.AlreadyRegistered, id)
		}
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Str("term", term).
		Int("new", len(result.NewlyRegistered)).
		Int("existing", len(result.AlreadyRegistered)).
		Msg("Courses registered")
	return result, nil
}

// ListRegistrations returns the student's registrations for the current term
func (s *RegistrationService) ListRegistrations(ctx context.Context, studentID int64) ([]dto.RegisteredCourse, error) {
	term, err := s.terms.CurrentTerm(ctx)
	if err != nil {
		return nil, err
	}
	regs, err := s.reader.ListForTerm(ctx, studentID, term)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RegisteredCourse, 0, len(regs))
	for _, r := range regs {
		item := dto.RegisteredCourse{
			CourseID:     r.CourseID,
			Term:         r.Term,
			RegisteredAt: r.RegisteredAt.UTC().Format(time.RFC3339),
		}
		if r.Course != nil {
			item.CourseName = r.Course.Name
			item.Unit = r.Course.Unit
		}
		out = append(out, item)
	}
	return out, nil
}

// unknownCourses returns the normalised requested IDs missing from offered, sorted
func unknownCourses(requested []string, offered map[string]struct{}) []string {
	var unknown []string
	seen := make(map[string]struct{})
	for _, raw := range requested {
		id := validation.NormalizeCourseCode(raw)
		if id == "" {
			continue
		}
		if _, ok := offered[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unknown = append(unknown, id)
	}
	sort.Strings(unknown)
	return unknown
}
