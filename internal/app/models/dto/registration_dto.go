package dto

// RegisterCoursesRequest lists the elective courses the student chose. Compulsory
// courses are added by the server.
type RegisterCoursesRequest struct {
	ElectiveCourseIDs []string `json:"electiveCourseIds" binding:"omitempty,max=20,dive,required,max=16" example:"CSC305,MTH301"`
}

// RegistrationResult reports what a registration call changed
type RegistrationResult struct {
	Term              string   `json:"term" example:"1st"`
	Courses           []string `json:"courses"`
	NewlyRegistered   []string `json:"newlyRegistered"`
	AlreadyRegistered []string `json:"alreadyRegistered"`
}

// RegisteredCourse is one row in a student's registration list
type RegisteredCourse struct {
	CourseID     string `json:"courseId" example:"CSC301"`
	CourseName   string `json:"courseName" example:"Operating Systems"`
	Unit         int    `json:"unit" example:"3"`
	Term         string `json:"term" example:"1st"`
	RegisteredAt string `json:"registeredAt" example:"2025-01-15T10:00:00Z"`
}
