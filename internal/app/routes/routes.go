package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sicfor/backend/internal/app/controllers"
	"github.com/sicfor/backend/internal/middleware"
)

// SetupRecursosRoutes registers the resource API under /api/v1
func SetupRecursosRoutes(router *gin.Engine, ctrl *controllers.RecursoController) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/test-db", ctrl.TestDB)

		v1.GET("/recursos", ctrl.GetAll)
		v1.POST("/recursos", ctrl.Create)
		v1.GET("/recursos/tipo/:tipo", ctrl.GetByTipo)
		v1.GET("/recursos/:id", ctrl.GetByID)
		v1.PUT("/recursos/:id", ctrl.Update)
		v1.DELETE("/recursos/:id", ctrl.Delete)

		v1.GET("/estadisticas", ctrl.Stats)
		v1.GET("/buscar", ctrl.Search)

		v1.POST("/upload", ctrl.Upload)
		v1.POST("/upload-local", ctrl.UploadLocal)
	}
}

// SetupEstudiantesRoutes registers the student API under /estudiantes
func SetupEstudiantesRoutes(router *gin.Engine, ctrl *controllers.EstudianteController) {
	estudiantes := router.Group("/estudiantes")
	{
		estudiantes.GET("/", ctrl.GetAll)
		estudiantes.GET("/buscar", ctrl.Buscar)
		estudiantes.GET("/:id", ctrl.GetByID)
		estudiantes.POST("/", middleware.ValidarEstudiante(), ctrl.Create)
		estudiantes.PUT("/:id", middleware.ValidarEstudiante(), ctrl.Update)
		estudiantes.DELETE("/:id", ctrl.Delete)
		estudiantes.POST("/upload-foto", ctrl.UploadFoto)
	}
}
