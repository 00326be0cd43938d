package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/auth"
	"github.com/yigit/registrar/internal/pkg/validation"
)

// CredentialStore looks up students by email and checks their passwords
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	VerifyPassword(plain, hash string) bool
	Hash(plain string) (string, error)
}

type studentCredentials struct {
	students StudentStore
	hasher   *auth.PasswordHasher
}

// NewCredentialStore backs CredentialStore with the students table and bcrypt
func NewCredentialStore(students StudentStore, hasher *auth.PasswordHasher) CredentialStore {
	return &studentCredentials{students: students, hasher: hasher}
}

func (c *studentCredentials) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	return c.students.GetByEmail(ctx, email)
}

func (c *studentCredentials) VerifyPassword(plain, hash string) bool {
	return c.hasher.Verify(plain, hash)
}

func (c *studentCredentials) Hash(plain string) (string, error) {
	return c.hasher.Hash(plain)
}

// AuthResult is the outcome of a successful signup or login
type AuthResult struct {
	Token   *auth.IssuedToken
	Student *models.Student
}

// AuthService handles authentication operations
type AuthService struct {
	credentials CredentialStore
	students    StudentStore
	departments DepartmentStore
	tokens      TokenStore
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	credentials CredentialStore,
	students StudentStore,
	departments DepartmentStore,
	tokens TokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		students:    students,
		departments: departments,
		tokens:      tokens,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Signup creates a student account and signs them in. A duplicate email
// fails with apperrors.ErrEmailAlreadyExists and creates nothing.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*AuthResult, error) {
	email := validation.NormalizeEmail(req.Email)
	if err := validateSignup(email, req); err != nil {
		return nil, err
	}

	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	exists, err := s.students.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Warn().Str("email", email).Msg("Signup rejected, email already registered")
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := s.credentials.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	student := &models.Student{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Password:     hash,
		DepartmentID: req.DepartmentID,
		Level:        req.Level,
		MatricNumber: trimmedOrNil(req.MatricNumber),
		Phone:        trimmedOrNil(req.Phone),
		Address:      trimmedOrNil(req.Address),
	}
	// The unique constraint still guards against a concurrent signup
	// slipping past the existence check.
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(student.ID, student.Email)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", student.ID).Msg("Failed to issue token after signup")
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student signed up")
	return &AuthResult{Token: token, Student: student}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both fail with apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	email := validation.NormalizeEmail(req.Email)

	student, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.credentials.VerifyPassword(req.Password, student.Password) {
		s.logger.Warn().Int64("studentID", student.ID).Msg("Login failed, wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(student.ID, student.Email)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", student.ID).Msg("Failed to issue token")
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student logged in")
	return &AuthResult{Token: token, Student: student}, nil
}

// Logout revokes the token identified by claims until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return apperrors.ErrTokenInvalid
	}
	if claims.ExpiresAt == nil {
		return apperrors.ErrTokenInvalid
	}

	if err := s.tokens.Revoke(ctx, jti, claims.ExpiresAt.Time); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", claims.StudentID).Msg("Student logged out")
	return nil
}

// Authenticate validates a token string and rejects revoked tokens
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}
	revoked, err := s.tokens.IsRevoked(ctx, jti)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}

func validateSignup(email string, req *dto.SignupRequest) error {
	if !validation.IsEmail(email) {
		return apperrors.NewCustomError(apperrors.ErrInvalidEmail, "email format is invalid").
			WithDetails(map[string]interface{}{"field": "email"})
	}
	if problem := validation.PasswordProblem(req.Password); problem != "" {
		return apperrors.NewCustomError(apperrors.ErrInvalidPassword, problem)
	}
	if !validation.IsLevel(req.Level) {
		return apperrors.NewCustomError(apperrors.ErrInvalidLevel, "level must be one of 100, 200, 300, 400, 500").
			WithDetails(map[string]interface{}{"allowed": validation.Levels})
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return apperrors.NewValidationError("first and last name are required")
	}
	return nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
