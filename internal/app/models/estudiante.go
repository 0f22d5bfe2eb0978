package models

// Estudiante represents a student record. The identification number and the
// email are business keys: no two rows may share either value.
type Estudiante struct {
	ID                     int64   `json:"id"`
	Fotografia             *string `json:"fotografia"`
	Nombres                string  `json:"nombres"`
	Apellidos              string  `json:"apellidos"`
	TipoDocumento          string  `json:"tipo_documento"`
	NumeroIdentificacion   string  `json:"numero_identificacion"`
	FechaNacimiento        string  `json:"fecha_nacimiento"`
	DepartamentoNacimiento *string `json:"departamento_nacimiento"`
	MunicipioNacimiento    *string `json:"municipio_nacimiento"`
	DepartamentoResidencia *string `json:"departamento_residencia"`
	MunicipioResidencia    *string `json:"municipio_residencia"`
	Zona                   *string `json:"zona"`
	Direccion              *string `json:"direccion"`
	Email                  string  `json:"email"`
	Celular                *string `json:"celular"`
}
