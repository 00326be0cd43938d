package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/middleware"
)

// DepartmentLister lists departments
type DepartmentLister interface {
	ListDepartments(ctx context.Context) ([]dto.DepartmentData, error)
}

// DepartmentController handles department-related operations
type DepartmentController struct {
	departments DepartmentLister
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departments DepartmentLister) *DepartmentController {
	return &DepartmentController{departments: departments}
}

// GetAllDepartments retrieves all departments
// @Summary Get all departments
// @Description Lists departments a student can sign up to
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.DepartmentData} "Departments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	departments, err := c.departments.ListDepartments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(departments))
}
