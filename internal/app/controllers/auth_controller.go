// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/auth"
)

// AuthService is the authentication surface the controller needs
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*services.AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*services.AuthResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// CookieConfig controls the auth cookie attributes
type CookieConfig struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// AuthController handles authentication related operations
type AuthController struct {
	authService AuthService
	cookie      CookieConfig
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthService, cookie CookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Signup handles student account creation
// @Summary Create a student account
// @Description Creates a student account and sets the HTTP-only auth cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid signup request payload")
		return
	}

	result, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, result.Token)
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(authResponse(result)))
}

// Login handles student login
// @Summary Student login
// @Description Authenticates a student and sets the HTTP-only auth cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid login request payload")
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, result.Token)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(authResponse(result)))
}

// Logout revokes the current token and clears the cookie
// @Summary Log out
// @Description Revokes the current access token and clears the auth cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := middleware.Claims(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), claims); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.clearTokenCookie(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Logged out"}))
}

func (c *AuthController) setTokenCookie(ctx *gin.Context, token *auth.IssuedToken) {
	ctx.SetSameSite(c.cookie.SameSite)
	ctx.SetCookie(c.cookie.Name, token.Token, int(token.ExpiresIn), "/", c.cookie.Domain, c.cookie.Secure, true)
}

func (c *AuthController) clearTokenCookie(ctx *gin.Context) {
	ctx.SetSameSite(c.cookie.SameSite)
	ctx.SetCookie(c.cookie.Name, "", -1, "/", c.cookie.Domain, c.cookie.Secure, true)
}

func authResponse(result *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: result.Token.Token,
			TokenType:   "Bearer",
			ExpiresIn:   result.Token.ExpiresIn,
		},
		Student: dto.NewStudentResponse(result.Student),
	}
}
