package models

import "time"

// Registration is one student-course registration for a term. Rows are
// immutable once written.
type Registration struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	CourseID     string    `json:"courseId" db:"course_id"`
	Term         string    `json:"term" db:"term"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}
