package apperrors

import "errors"

// Validation and request errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrMissingFile      = errors.New("missing file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrBadRequest       = errors.New("bad request")
)

// Recurso errors
var (
	ErrRecursoNotFound = errors.New("recurso not found")
	ErrTipoInvalido    = errors.New("invalid resource type")
)

// Estudiante errors
var (
	ErrEstudianteNotFound  = errors.New("estudiante not found")
	ErrEstudianteDuplicado = errors.New("estudiante already registered")
)

// Infrastructure errors
var (
	ErrMediaUpload        = errors.New("media upload failed")
	ErrMediaNotConfigured = errors.New("media store not configured")
)

// CustomError carries a user-facing message alongside a sentinel error so
// handlers can map the sentinel to a status code and still return the
// specific message text.
type CustomError struct {
	Err     error
	Message string
	Details string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds a secondary detail line to the error
func (e *CustomError) WithDetails(details string) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a validation failure with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewFileTooLargeError creates an oversize-payload failure with a message
func NewFileTooLargeError(message string) error {
	return &CustomError{
		Err:     ErrFileTooLarge,
		Message: message,
	}
}

// Details returns the detail line of a CustomError, or "" for other errors.
func Details(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Details
	}
	return ""
}
