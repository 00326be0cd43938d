package dto

import (
	"time"

	"github.com/yigit/registrar/internal/app/models"
)

// DepartmentData is the department summary embedded in a profile
type DepartmentData struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Computer Science"`
	Code string `json:"code" example:"CSC"`
}

// StudentResponse is a student's profile without credentials
type StudentResponse struct {
	ID           int64           `json:"id" example:"1"`
	FirstName    string          `json:"firstName" example:"Ada"`
	LastName     string          `json:"lastName" example:"Obi"`
	Email        string          `json:"email" example:"ada.obi@uni.edu.ng"`
	Level        string          `json:"level" example:"300"`
	MatricNumber *string         `json:"matricNumber,omitempty"`
	Phone        *string         `json:"phone,omitempty"`
	Address      *string         `json:"address,omitempty"`
	Department   *DepartmentData `json:"department,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// NewStudentResponse maps a student model to its public profile
func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:           s.ID,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Email:        s.Email,
		Level:        s.Level,
		MatricNumber: s.MatricNumber,
		Phone:        s.Phone,
		Address:      s.Address,
		CreatedAt:    s.CreatedAt,
	}
	if s.Department != nil {
		resp.Department = &DepartmentData{ID: s.Department.ID, Name: s.Department.Name, Code: s.Department.Code}
	}
	return resp
}

// OfferableCourse is one course available to the student's cohort this term
type OfferableCourse struct {
	ID   string `json:"id" example:"CSC301"`
	Name string `json:"name" example:"Operating Systems"`
	Unit int    `json:"unit" example:"3"`
	Mode string `json:"mode" example:"ELECTIVE"`
}

// OfferableCoursesResponse groups the cohort's offerings by mode
type OfferableCoursesResponse struct {
	Term       string            `json:"term" example:"1st"`
	Level      string            `json:"level" example:"300"`
	Compulsory []OfferableCourse `json:"compulsory"`
	Elective   []OfferableCourse `json:"elective"`
}
