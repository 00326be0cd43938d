package dto

// SignupRequest represents student account creation data
type SignupRequest struct {
	FirstName    string  `json:"firstName" binding:"required,max=100" example:"Ada"`
	LastName     string  `json:"lastName" binding:"required,max=100" example:"Obi"`
	Email        string  `json:"email" binding:"required,email" example:"ada.obi@uni.edu.ng"`
	Password     string  `json:"password" binding:"required,min=8" example:"s3cretpass"`
	DepartmentID int64   `json:"departmentId" binding:"required,gt=0" example:"1"`
	Level        string  `json:"level" binding:"required,oneof=100 200 300 400 500" example:"100"`
	MatricNumber *string `json:"matricNumber,omitempty" binding:"omitempty,max=32"`
	Phone        *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	Address      *string `json:"address,omitempty" binding:"omitempty,max=255"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada.obi@uni.edu.ng"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// TokenResponse represents JWT token information. The token itself travels
// in the auth cookie; it is echoed here for non-browser clients.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"86400"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token   TokenResponse   `json:"token"`
	Student StudentResponse `json:"student"`
}
