package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sicfor/backend/internal/app/models/dto"
	"github.com/sicfor/backend/internal/app/services"
	"github.com/sicfor/backend/internal/middleware"
	"github.com/sicfor/backend/internal/pkg/apperrors"
)

// RecursoController handles the resource HTTP endpoints
type RecursoController struct {
	service services.RecursoService
	dbName  string
}

// NewRecursoController creates a new resource controller. dbName is echoed
// by the connectivity probe.
func NewRecursoController(service services.RecursoService, dbName string) *RecursoController {
	return &RecursoController{
		service: service,
		dbName:  dbName,
	}
}

// recursoID parses the :id path parameter. A non-numeric id matches no row,
// so it reports not-found rather than a separate error shape.
func recursoID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ErrRecursoNotFound
	}
	return id, nil
}

// GetAll returns every resource, newest first
func (ctrl *RecursoController) GetAll(c *gin.Context) {
	recursos, err := ctrl.service.GetAll(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, recursos)
}

// GetByID returns one resource
func (ctrl *RecursoController) GetByID(c *gin.Context) {
	id, err := recursoID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	recurso, err := ctrl.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, recurso)
}

// GetByTipo returns the resources of one type
func (ctrl *RecursoController) GetByTipo(c *gin.Context) {
	recursos, err := ctrl.service.GetByTipo(c.Request.Context(), c.Param("tipo"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, recursos)
}

// Create stores a new URL-backed resource
func (ctrl *RecursoController) Create(c *gin.Context) {
	var req dto.RecursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrBadRequest, "Cuerpo de la petición inválido"))
		return
	}

	recurso, err := ctrl.service.Create(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RecursoMutationResponse{
		ID:          recurso.ID,
		Tipo:        recurso.Tipo,
		Titulo:      recurso.Titulo,
		Descripcion: recurso.Descripcion,
		URL:         recurso.URL,
		Autor:       recurso.Autor,
		Etiquetas:   recurso.Etiquetas,
		Mensaje:     "Recurso creado exitosamente",
	})
}

// Update fully replaces the editable fields of a resource
func (ctrl *RecursoController) Update(c *gin.Context) {
	id, err := recursoID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.RecursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrBadRequest, "Cuerpo de la petición inválido"))
		return
	}

	recurso, err := ctrl.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecursoMutationResponse{
		ID:          recurso.ID,
		Tipo:        recurso.Tipo,
		Titulo:      recurso.Titulo,
		Descripcion: recurso.Descripcion,
		URL:         recurso.URL,
		Autor:       recurso.Autor,
		Etiquetas:   recurso.Etiquetas,
		Mensaje:     "Recurso actualizado exitosamente",
	})
}

// Delete removes a resource
func (ctrl *RecursoController) Delete(c *gin.Context) {
	id, err := recursoID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecursoDeleteResponse{
		Mensaje: "Recurso eliminado exitosamente",
		ID:      id,
	})
}

// Stats returns total and per-type resource counts
func (ctrl *RecursoController) Stats(c *gin.Context) {
	stats, err := ctrl.service.Stats(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Search filters resources by a free-text query and an optional type
func (ctrl *RecursoController) Search(c *gin.Context) {
	recursos, err := ctrl.service.Search(c.Request.Context(), c.Query("q"), c.Query("tipo"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, recursos)
}

// uploadForm reads the multipart form fields plus the file. A missing file
// is reported by the service, so the FormFile error is swallowed here.
func uploadForm(c *gin.Context) (*dto.RecursoRequest, *multipart.FileHeader) {
	req := &dto.RecursoRequest{
		Tipo:        c.PostForm("tipo"),
		Titulo:      c.PostForm("titulo"),
		Descripcion: c.PostForm("descripcion"),
		Autor:       c.PostForm("autor"),
		Etiquetas:   c.PostForm("etiquetas"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader = nil
	}
	return req, fileHeader
}

// Upload stores a file in the cloud media store and creates the resource
func (ctrl *RecursoController) Upload(c *gin.Context) {
	req, fileHeader := uploadForm(c)

	resp, err := ctrl.service.Upload(c.Request.Context(), req, fileHeader)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UploadLocal stores a file in the upload directory and creates the resource
func (ctrl *RecursoController) UploadLocal(c *gin.Context) {
	req, fileHeader := uploadForm(c)

	resp, err := ctrl.service.UploadLocal(c.Request.Context(), req, fileHeader)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// TestDB probes database connectivity
func (ctrl *RecursoController) TestDB(c *gin.Context) {
	if err := ctrl.service.TestDB(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TestDBResponse{
		Success:  true,
		Mensaje:  "Conexión a base de datos exitosa",
		Database: ctrl.dbName,
	})
}
