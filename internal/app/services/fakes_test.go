package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/transcript"
)

type fakeStudents struct {
	mu      sync.Mutex
	byID    map[int64]*models.Student
	nextID  int64
	failGet error
}

func newFakeStudents(students ...*models.Student) *fakeStudents {
	f := &fakeStudents{byID: make(map[int64]*models.Student), nextID: 100}
	for _, s := range students {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeStudents) Create(_ context.Context, s *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == s.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	f.byID[s.ID] = s
	return nil
}

func (f *fakeStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudents) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byID {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudents) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

type fakeDepartments map[int64]*models.Department

func (f fakeDepartments) GetByID(_ context.Context, id int64) (*models.Department, error) {
	d, ok := f[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return d, nil
}

func (f fakeDepartments) GetAll(context.Context) ([]*models.Department, error) {
	out := make([]*models.Department, 0, len(f))
	for _, d := range f {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeCatalog struct {
	offerings []*models.DepartmentalOffering
	err       error
}

func (f *fakeCatalog) GetOfferings(_ context.Context, c repositories.Cohort, mode *models.OfferingMode) ([]*models.DepartmentalOffering, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.DepartmentalOffering
	for _, o := range f.offerings {
		if o.DepartmentID != c.DepartmentID || o.Level != c.Level || o.Term != c.Term {
			continue
		}
		if mode != nil && o.Mode != *mode {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func offering(dept int64, level, term, course string, mode models.OfferingMode) *models.DepartmentalOffering {
	return &models.DepartmentalOffering{
		DepartmentID: dept, Level: level, Term: term, CourseID: course, Mode: mode,
		Course: &models.Course{ID: course, Name: course + " title", Unit: 3},
	}
}

type regKey struct {
	student int64
	course  string
	term    string
}

// fakeRegistrations stages writes per Run and applies them only on success,
// mirroring a transaction.
type fakeRegistrations struct {
	mu        sync.Mutex
	rows      map[regKey]time.Time
	locked    []int64
	failWrite error
}

func newFakeRegistrations() *fakeRegistrations {
	return &fakeRegistrations{rows: make(map[regKey]time.Time)}
}

func (f *fakeRegistrations) Run(ctx context.Context, fn func(ctx context.Context, store RegistrationStore) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx := &fakeRegTx{parent: f, staged: make(map[regKey]time.Time)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for k, v := range tx.staged {
		f.rows[k] = v
	}
	return nil
}

func (f *fakeRegistrations) LockStudent(context.Context, int64) error { return nil }

func (f *fakeRegistrations) InsertMany(context.Context, int64, string, []string) ([]string, error) {
	return nil, errors.New("writes must go through Run")
}

func (f *fakeRegistrations) ListForTerm(_ context.Context, studentID int64, term string) ([]*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Registration
	for k, at := range f.rows {
		if k.student == studentID && k.term == term {
			out = append(out, &models.Registration{StudentID: k.student, CourseID: k.course, Term: k.term, RegisteredAt: at,
				Course: &models.Course{ID: k.course, Name: k.course + " title", Unit: 3}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}

type fakeRegTx struct {
	parent *fakeRegistrations
	staged map[regKey]time.Time
}

func (t *fakeRegTx) LockStudent(_ context.Context, id int64) error {
	t.parent.locked = append(t.parent.locked, id)
	return nil
}

func (t *fakeRegTx) InsertMany(_ context.Context, studentID int64, term string, courseIDs []string) ([]string, error) {
	var inserted []string
	for _, id := range courseIDs {
		if t.parent.failWrite != nil && len(inserted) == 1 {
			return nil, t.parent.failWrite
		}
		k := regKey{studentID, id, term}
		if _, ok := t.parent.rows[k]; ok {
			continue
		}
		if _, ok := t.staged[k]; ok {
			continue
		}
		t.staged[k] = time.Now()
		inserted = append(inserted, id)
	}
	return inserted, nil
}

func (t *fakeRegTx) ListForTerm(context.Context, int64, string) ([]*models.Registration, error) {
	return nil, nil
}

type fakeGrades struct {
	rows map[int64][]*models.GradeRecord
	err  error
}

func (f *fakeGrades) GetGradedRows(_ context.Context, studentID int64) ([]*models.GradeRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[studentID], nil
}

type fakeTokens struct {
	mu      sync.Mutex
	revoked map[uuid.UUID]time.Time
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{revoked: make(map[uuid.UUID]time.Time)}
}

func (f *fakeTokens) Revoke(_ context.Context, jti uuid.UUID, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = exp
	return nil
}

func (f *fakeTokens) IsRevoked(_ context.Context, jti uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[jti]
	return ok, nil
}

type recordingRenderer struct {
	doc *transcript.Document
	err error
}

func (r *recordingRenderer) Render(doc *transcript.Document, w io.Writer) error {
	r.doc = doc
	if r.err != nil {
		return r.err
	}
	_, err := io.WriteString(w, "%PDF-fake")
	return err
}

func strPtr(s string) *string { return &s }
