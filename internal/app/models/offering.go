package models

// DepartmentalOffering makes a course available to a (department, level, term) cohort.
type DepartmentalOffering struct {
	DepartmentID int64        `json:"departmentId" db:"department_id"`
	Level        string       `json:"level" db:"level"`
	Term         string       `json:"term" db:"term"`
	CourseID     string       `json:"courseId" db:"course_id"`
	Mode         OfferingMode `json:"mode" db:"mode"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}
