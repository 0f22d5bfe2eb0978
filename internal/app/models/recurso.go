package models

import "time"

// Resource types
const (
	TipoPDF     = "pdf"
	TipoGuias   = "guias"
	TipoVideos  = "videos"
	TipoEnlaces = "enlaces"
)

// Storage types for a resource URL
const (
	StorageLocal      = "local"
	StorageCloudinary = "cloudinary"
	StorageURL        = "url"
)

// TipoValido reports whether tipo is one of the known resource types.
func TipoValido(tipo string) bool {
	switch tipo {
	case TipoPDF, TipoGuias, TipoVideos, TipoEnlaces:
		return true
	}
	return false
}

// Recurso represents a stored learning resource (PDF, guide, video or link).
type Recurso struct {
	ID                 int64     `json:"id"`
	Tipo               string    `json:"tipo"`
	Titulo             string    `json:"titulo"`
	Descripcion        string    `json:"descripcion"`
	URL                string    `json:"url"`
	URLCloudinary      *string   `json:"url_cloudinary"`
	PublicID           *string   `json:"public_id"`
	StorageType        string    `json:"storage_type"`
	Autor              string    `json:"autor"`
	Etiquetas          string    `json:"etiquetas"`
	FechaCreacion      time.Time `json:"fecha_creacion"`
	FechaActualizacion time.Time `json:"fecha_actualizacion"`
}
