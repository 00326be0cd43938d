package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/registrar/internal/app/controllers"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/middleware"
)

// SetupRouter configures all application routes. Every route is served
// under /api/v1 and at the bare path.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	departmentController *controllers.DepartmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	for _, prefix := range []string{"/api/v1", ""} {
		registerRoutes(router.Group(prefix), authController, studentController, departmentController, authMiddleware)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found"),
		))
	})
}

func registerRoutes(
	group *gin.RouterGroup,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	departmentController *controllers.DepartmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	group.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		}))
	})

	// --- Public routes ---
	group.GET("/departments", departmentController.GetAllDepartments)

	auth := group.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authMiddleware.CookieAuth(), authController.Logout)
	}

	// --- Authenticated student routes ---
	student := group.Group("/student")
	student.Use(authMiddleware.CookieAuth())
	{
		student.GET("/profile", studentController.Profile)
		student.GET("/offerable-courses", studentController.OfferableCourses)
		student.POST("/register-courses", studentController.RegisterCourses)
		student.GET("/registrations", studentController.Registrations)
		student.GET("/cgpa", studentController.CGPA)
		student.GET("/transcript", studentController.Transcript)
	}
}
