package dto

// CGPAResponse is a student's cumulative grade point average
type CGPAResponse struct {
	CGPA        float64 `json:"cgpa" example:"3.4444444444444446"`
	CGPADisplay string  `json:"cgpaDisplay" example:"3.44"`
	TotalUnits  int     `json:"totalUnits" example:"9"`
	TotalPoints float64 `json:"totalPoints" example:"31"`
	CourseCount int     `json:"courseCount" example:"3"`
}
