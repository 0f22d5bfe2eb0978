package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sicfor/backend/internal/pkg/apperrors"
	"github.com/sicfor/backend/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. The wire format is
// `{"error": ...}` except for student lookups, whose 404 historically used a
// `message` key; both shapes are preserved.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrTipoInvalido),
		errors.Is(err, apperrors.ErrMissingFile),
		errors.Is(err, apperrors.ErrEstudianteDuplicado),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrRecursoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recurso no encontrado"})

	case errors.Is(err, apperrors.ErrEstudianteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Estudiante no encontrado"})

	case errors.Is(err, apperrors.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrMediaUpload), errors.Is(err, apperrors.ErrMediaNotConfigured):
		body := gin.H{"error": err.Error()}
		if details := apperrors.Details(err); details != "" {
			body["details"] = details
		}
		c.JSON(http.StatusInternalServerError, body)

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
