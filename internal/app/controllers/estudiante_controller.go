package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sicfor/backend/internal/app/models/dto"
	"github.com/sicfor/backend/internal/app/services"
	"github.com/sicfor/backend/internal/middleware"
	"github.com/sicfor/backend/internal/pkg/apperrors"
)

// EstudianteController handles the student HTTP endpoints
type EstudianteController struct {
	service services.EstudianteService
}

// NewEstudianteController creates a new student controller
func NewEstudianteController(service services.EstudianteService) *EstudianteController {
	return &EstudianteController{
		service: service,
	}
}

func estudianteID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ErrEstudianteNotFound
	}
	return id, nil
}

// boundRequest fetches the payload the validation middleware stored
func boundRequest(c *gin.Context) (*dto.EstudianteRequest, bool) {
	value, exists := c.Get(middleware.EstudianteRequestKey)
	if !exists {
		return nil, false
	}
	req, ok := value.(*dto.EstudianteRequest)
	return req, ok
}

// GetAll returns every student
func (ctrl *EstudianteController) GetAll(c *gin.Context) {
	estudiantes, err := ctrl.service.GetAll(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, estudiantes)
}

// Buscar looks a student up by identification number. An absent query
// parameter matches no row and reports not-found.
func (ctrl *EstudianteController) Buscar(c *gin.Context) {
	numero := c.Query("numero_identificacion")
	if numero == "" {
		middleware.HandleAPIError(c, apperrors.ErrEstudianteNotFound)
		return
	}

	estudiante, err := ctrl.service.GetByNumeroIdentificacion(c.Request.Context(), numero)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, estudiante)
}

// GetByID returns one student
func (ctrl *EstudianteController) GetByID(c *gin.Context) {
	id, err := estudianteID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	estudiante, err := ctrl.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, estudiante)
}

// Create registers a new student. The payload has already passed the
// validation middleware.
func (ctrl *EstudianteController) Create(c *gin.Context) {
	req, ok := boundRequest(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrBadRequest, "Cuerpo de la petición inválido"))
		return
	}

	id, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.EstudianteCreateResponse{
		ID:      id,
		Message: "Estudiante creado correctamente",
	})
}

// Update fully replaces a student record
func (ctrl *EstudianteController) Update(c *gin.Context) {
	id, err := estudianteID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	req, ok := boundRequest(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrBadRequest, "Cuerpo de la petición inválido"))
		return
	}

	if err := ctrl.service.Update(c.Request.Context(), id, req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Estudiante actualizado correctamente"})
}

// Delete removes a student
func (ctrl *EstudianteController) Delete(c *gin.Context) {
	id, err := estudianteID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Estudiante eliminado correctamente"})
}

// UploadFoto stores a profile photo and returns where it landed
func (ctrl *EstudianteController) UploadFoto(c *gin.Context) {
	fileHeader, err := c.FormFile("foto")
	if err != nil {
		fileHeader = nil
	}

	resp, err := ctrl.service.UploadFoto(c.Request.Context(), fileHeader)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
