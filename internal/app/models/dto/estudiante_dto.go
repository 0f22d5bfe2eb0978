package dto

// EstudianteRequest is the payload for creating or fully replacing a student.
type EstudianteRequest struct {
	Fotografia             *string `json:"fotografia"`
	Nombres                string  `json:"nombres" validate:"required"`
	Apellidos              string  `json:"apellidos" validate:"required"`
	TipoDocumento          string  `json:"tipo_documento" validate:"required"`
	NumeroIdentificacion   string  `json:"numero_identificacion" validate:"required"`
	FechaNacimiento        string  `json:"fecha_nacimiento" validate:"required"`
	DepartamentoNacimiento *string `json:"departamento_nacimiento"`
	MunicipioNacimiento    *string `json:"municipio_nacimiento"`
	DepartamentoResidencia *string `json:"departamento_residencia"`
	MunicipioResidencia    *string `json:"municipio_residencia"`
	Zona                   *string `json:"zona"`
	Direccion              *string `json:"direccion"`
	Email                  string  `json:"email" validate:"required,email"`
	Celular                *string `json:"celular"`
}

// EstudianteCreateResponse confirms a created student.
type EstudianteCreateResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// FotoUploadResponse returns where an uploaded profile photo landed. The
// caller persists the URL through a follow-up create or update.
type FotoUploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}
