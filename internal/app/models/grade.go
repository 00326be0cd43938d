package models

// GradeRecord is a graded course result written by the grading process.
// Course name and unit are joined in from the catalog.
type GradeRecord struct {
	StudentID  int64    `json:"studentId" db:"student_id"`
	CourseID   string   `json:"courseId" db:"course_id"`
	CourseName string   `json:"courseName" db:"course_name"`
	Unit       int      `json:"unit" db:"unit"`
	Term       string   `json:"term" db:"term"`
	Grade      string   `json:"grade" db:"grade"`
	Score      *float64 `json:"score,omitempty" db:"score"`
}
