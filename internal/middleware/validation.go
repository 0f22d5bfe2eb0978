package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sicfor/backend/internal/app/models/dto"
)

// EstudianteRequestKey is the context key under which the validated payload
// is stored for the handler.
const EstudianteRequestKey = "estudianteRequest"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report json field names instead of Go struct field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// fieldMessage translates one failed validation into the user-facing text
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "El campo " + fe.Field() + " es obligatorio"
	case "email":
		return "El email no tiene un formato válido"
	default:
		return "El campo " + fe.Field() + " no es válido"
	}
}

// ValidarEstudiante binds and validates the student payload before the
// handler runs. On failure the request is aborted with 400 and the first
// failing rule's message.
func ValidarEstudiante() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.EstudianteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
			return
		}

		if err := getValidator().Struct(&req); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) && len(ve) > 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fieldMessage(ve[0])})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Datos del estudiante inválidos"})
			return
		}

		c.Set(EstudianteRequestKey, &req)
		c.Next()
	}
}
