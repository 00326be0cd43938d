package routes

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// OpenAPIPath is where the API description is served
const OpenAPIPath = "/openapi.json"

//go:embed openapi.json
var openAPIDocument []byte

// SetupSwagger serves the OpenAPI document and the Swagger UI that renders it
func SetupSwagger(router *gin.Engine) {
	router.GET(OpenAPIPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", openAPIDocument)
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL(OpenAPIPath),
		ginSwagger.DefaultModelsExpandDepth(1),
	))
}
