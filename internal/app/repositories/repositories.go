package repositories

import (
	"github.com/Masterminds/squirrel"

	"github.com/yigit/registrar/internal/db"
)

// psql builds Postgres-flavoured SQL with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository      *StudentRepository
	DepartmentRepository   *DepartmentRepository
	CatalogRepository      *CatalogRepository
	RegistrationRepository *RegistrationRepository
	GradeRepository        *GradeRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(conn),
		DepartmentRepository:   NewDepartmentRepository(conn),
		CatalogRepository:      NewCatalogRepository(conn),
		RegistrationRepository: NewRegistrationRepository(conn),
		GradeRepository:        NewGradeRepository(conn),
		TokenRepository:        NewTokenRepository(conn),
	}
}
