package dto

// RecursoRequest is the payload for creating or fully replacing a resource.
// The same fields arrive as form values on the multipart upload endpoints.
type RecursoRequest struct {
	Tipo        string `json:"tipo" form:"tipo"`
	Titulo      string `json:"titulo" form:"titulo"`
	Descripcion string `json:"descripcion" form:"descripcion"`
	URL         string `json:"url" form:"url"`
	Autor       string `json:"autor" form:"autor"`
	Etiquetas   string `json:"etiquetas" form:"etiquetas"`
}

// RecursoMutationResponse echoes a created or updated resource.
type RecursoMutationResponse struct {
	ID          int64  `json:"id"`
	Tipo        string `json:"tipo"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	URL         string `json:"url"`
	Autor       string `json:"autor"`
	Etiquetas   string `json:"etiquetas"`
	Mensaje     string `json:"mensaje"`
}

// RecursoDeleteResponse confirms a hard delete.
type RecursoDeleteResponse struct {
	Mensaje string `json:"mensaje"`
	ID      int64  `json:"id"`
}

// TipoCantidad is one per-type bucket of the statistics endpoint.
type TipoCantidad struct {
	Tipo     string `json:"tipo"`
	Cantidad int64  `json:"cantidad"`
}

// EstadisticasResponse aggregates resource counts.
type EstadisticasResponse struct {
	Total   int64          `json:"total"`
	PorTipo []TipoCantidad `json:"por_tipo"`
}

// CloudinaryData mirrors the metadata block the original media host returned
// with every upload.
type CloudinaryData struct {
	ResourceType string   `json:"resource_type"`
	Format       string   `json:"format"`
	Size         int64    `json:"size"`
	Duration     *float64 `json:"duration"`
}

// RecursoUploadResponse is returned after a cloud-stored upload.
type RecursoUploadResponse struct {
	ID             int64          `json:"id"`
	Tipo           string         `json:"tipo"`
	Titulo         string         `json:"titulo"`
	Descripcion    string         `json:"descripcion"`
	URL            string         `json:"url"`
	URLCloudinary  string         `json:"url_cloudinary"`
	PublicID       string         `json:"public_id"`
	Autor          string         `json:"autor"`
	Etiquetas      string         `json:"etiquetas"`
	CloudinaryData CloudinaryData `json:"cloudinary_data"`
	Mensaje        string         `json:"mensaje"`
}

// FileData describes a locally stored upload.
type FileData struct {
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
	SizeMB   string `json:"sizeMB"`
}

// RecursoUploadLocalResponse is returned after a disk-stored upload.
type RecursoUploadLocalResponse struct {
	ID          int64    `json:"id"`
	Tipo        string   `json:"tipo"`
	Titulo      string   `json:"titulo"`
	Descripcion string   `json:"descripcion"`
	URL         string   `json:"url"`
	Storage     string   `json:"storage"`
	Filename    string   `json:"filename"`
	Autor       string   `json:"autor"`
	Etiquetas   string   `json:"etiquetas"`
	FileData    FileData `json:"file_data"`
	Mensaje     string   `json:"mensaje"`
}

// TestDBResponse reports the database connectivity probe.
type TestDBResponse struct {
	Success  bool   `json:"success"`
	Mensaje  string `json:"mensaje"`
	Database string `json:"database"`
}
