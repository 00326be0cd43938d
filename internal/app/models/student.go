package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	FirstName    string    `json:"firstName" db:"first_name" example:"Ada"`
	LastName     string    `json:"lastName" db:"last_name" example:"Obi"`
	Email        string    `json:"email" db:"email" example:"ada.obi@uni.edu.ng"`
	Password     string    `json:"-" db:"password"` // bcrypt hash, never serialised
	DepartmentID int64     `json:"departmentId" db:"department_id" example:"3"`
	Level        string    `json:"level" db:"level" example:"300"`
	MatricNumber *string   `json:"matricNumber,omitempty" db:"matric_number" example:"U2021/5570001"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Address      *string   `json:"address,omitempty" db:"address"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}

// FullName returns "First Last"
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
