package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sicfor/backend/internal/app/models"
	"github.com/sicfor/backend/internal/app/models/dto"
	"github.com/sicfor/backend/internal/pkg/apperrors"
	"github.com/sicfor/backend/internal/pkg/filestorage"
	"github.com/sicfor/backend/internal/pkg/logger"
	"github.com/sicfor/backend/internal/pkg/mediastore"
)

// Upload size caps. Video files get the larger limit.
const (
	maxUploadSizeMB      = 10
	maxVideoUploadSizeMB = 30
	maxUploadSize        = maxUploadSizeMB << 20
	maxVideoUploadSize   = maxVideoUploadSizeMB << 20
)

// RecursoStore is the persistence surface the resource service depends on.
type RecursoStore interface {
	GetAll(ctx context.Context) ([]models.Recurso, error)
	GetByID(ctx context.Context, id int64) (*models.Recurso, error)
	GetByTipo(ctx context.Context, tipo string) ([]models.Recurso, error)
	Create(ctx context.Context, recurso *models.Recurso) error
	Update(ctx context.Context, recurso *models.Recurso) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*dto.EstadisticasResponse, error)
	Search(ctx context.Context, q, tipo string) ([]models.Recurso, error)
	Ping(ctx context.Context) error
}

// LocalStore writes uploaded files to the local upload directory.
type LocalStore interface {
	Save(fileHeader *multipart.FileHeader) (*filestorage.StoredFile, error)
	Remove(name string) error
}

// RecursoService defines the business operations of the resource service
type RecursoService interface {
	GetAll(ctx context.Context) ([]models.Recurso, error)
	GetByID(ctx context.Context, id int64) (*models.Recurso, error)
	GetByTipo(ctx context.Context, tipo string) ([]models.Recurso, error)
	Create(ctx context.Context, req *dto.RecursoRequest) (*models.Recurso, error)
	Update(ctx context.Context, id int64, req *dto.RecursoRequest) (*models.Recurso, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*dto.EstadisticasResponse, error)
	Search(ctx context.Context, q, tipo string) ([]models.Recurso, error)
	Upload(ctx context.Context, req *dto.RecursoRequest, fileHeader *multipart.FileHeader) (*dto.RecursoUploadResponse, error)
	UploadLocal(ctx context.Context, req *dto.RecursoRequest, fileHeader *multipart.FileHeader) (*dto.RecursoUploadLocalResponse, error)
	TestDB(ctx context.Context) error
}

type recursoService struct {
	store      RecursoStore
	local      LocalStore
	media      mediastore.Uploader
	baseFolder string
}

// NewRecursoService creates a new resource service. media may be nil when no
// cloud store is configured; cloud uploads are then rejected at request time.
func NewRecursoService(store RecursoStore, local LocalStore, media mediastore.Uploader, baseFolder string) RecursoService {
	return &recursoService{
		store:      store,
		local:      local,
		media:      media,
		baseFolder: baseFolder,
	}
}

func (s *recursoService) GetAll(ctx context.Context) ([]models.Recurso, error) {
	return s.store.GetAll(ctx)
}

func (s *recursoService) GetByID(ctx context.Context, id int64) (*models.Recurso, error) {
	return s.store.GetByID(ctx, id)
}

func (s *recursoService) GetByTipo(ctx context.Context, tipo string) ([]models.Recurso, error) {
	return s.store.GetByTipo(ctx, tipo)
}

// validateRecursoRequest enforces the required fields of a JSON create or
// replace. The tipo check keeps invalid values from surfacing as database
// constraint errors.
func validateRecursoRequest(req *dto.RecursoRequest) error {
	if req.Tipo == "" || req.Titulo == "" || req.URL == "" {
		return apperrors.NewValidationError("Tipo, título y URL son requeridos")
	}
	if !models.TipoValido(req.Tipo) {
		return apperrors.NewCustomError(apperrors.ErrTipoInvalido,
			"Tipo inválido. Debe ser uno de: pdf, guias, videos, enlaces")
	}
	return nil
}

func (s *recursoService) Create(ctx context.Context, req *dto.RecursoRequest) (*models.Recurso, error) {
	if err := validateRecursoRequest(req); err != nil {
		return nil, err
	}

	recurso := &models.Recurso{
		Tipo:        req.Tipo,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		URL:         req.URL,
		StorageType: models.StorageURL,
		Autor:       req.Autor,
		Etiquetas:   req.Etiquetas,
	}

	if err := s.store.Create(ctx, recurso); err != nil {
		return nil, err
	}

	logger.Info().Int64("id", recurso.ID).Str("tipo", recurso.Tipo).Msg("Recurso created")
	return recurso, nil
}

func (s *recursoService) Update(ctx context.Context, id int64, req *dto.RecursoRequest) (*models.Recurso, error) {
	if err := validateRecursoRequest(req); err != nil {
		return nil, err
	}

	recurso := &models.Recurso{
		ID:          id,
		Tipo:        req.Tipo,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		URL:         req.URL,
		Autor:       req.Autor,
		Etiquetas:   req.Etiquetas,
	}

	if err := s.store.Update(ctx, recurso); err != nil {
		return nil, err
	}

	return recurso, nil
}

func (s *recursoService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("id", id).Msg("Recurso deleted")
	return nil
}

func (s *recursoService) Stats(ctx context.Context) (*dto.EstadisticasResponse, error) {
	return s.store.Stats(ctx)
}

func (s *recursoService) Search(ctx context.Context, q, tipo string) ([]models.Recurso, error) {
	if strings.TrimSpace(q) == "" {
		return nil, apperrors.NewValidationError("Parámetro de búsqueda requerido")
	}
	return s.store.Search(ctx, q, tipo)
}

func (s *recursoService) TestDB(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func fileContentType(fileHeader *multipart.FileHeader) string {
	return fileHeader.Header.Get("Content-Type")
}

// checkUploadSize applies the type-specific cap: videos get 30 MB, everything
// else 10 MB. The message carries both the cap and the actual size.
func checkUploadSize(fileHeader *multipart.FileHeader) error {
	isVideo := strings.HasPrefix(fileContentType(fileHeader), "video")

	maxSize, maxSizeMB, label := int64(maxUploadSize), maxUploadSizeMB, "Imagen"
	if isVideo {
		maxSize, maxSizeMB, label = maxVideoUploadSize, maxVideoUploadSizeMB, "Video"
	}

	if fileHeader.Size > maxSize {
		return apperrors.NewFileTooLargeError(fmt.Sprintf(
			"%s demasiado grande. Máximo permitido: %d MB. Tamaño actual: %.2f MB",
			label, maxSizeMB, float64(fileHeader.Size)/(1024*1024)))
	}
	return nil
}

func validateUploadRequest(req *dto.RecursoRequest, fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.NewCustomError(apperrors.ErrMissingFile, "No se ha proporcionado un archivo")
	}
	if req.Tipo == "" || req.Titulo == "" {
		return apperrors.NewValidationError("Tipo y título son requeridos")
	}
	if !models.TipoValido(req.Tipo) {
		return apperrors.NewCustomError(apperrors.ErrTipoInvalido,
			"Tipo inválido. Debe ser uno de: pdf, guias, videos, enlaces")
	}
	return checkUploadSize(fileHeader)
}

// resourceType classifies an upload the way the media host reports it back
func resourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "video"):
		return "video"
	case strings.HasPrefix(contentType, "image"):
		return "image"
	default:
		return "raw"
	}
}

// Upload streams a file to the cloud media store and records the resource
func (s *recursoService) Upload(ctx context.Context, req *dto.RecursoRequest, fileHeader *multipart.FileHeader) (*dto.RecursoUploadResponse, error) {
	if err := validateUploadRequest(req, fileHeader); err != nil {
		return nil, err
	}

	if s.media == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrMediaNotConfigured,
			"Almacenamiento de archivos en la nube no configurado")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	contentType := fileContentType(fileHeader)
	publicID := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filestorage.SanitizeFilename(fileHeader.Filename))

	result, err := s.media.Upload(ctx, file, fileHeader.Size, mediastore.UploadOptions{
		Folder:      path.Join(s.baseFolder, req.Tipo),
		PublicID:    publicID,
		ContentType: contentType,
	})
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Media upload failed")
		custom := apperrors.NewCustomError(apperrors.ErrMediaUpload, err.Error())
		return nil, custom.WithDetails("Error al subir archivo a Cloudinary")
	}

	recurso := &models.Recurso{
		Tipo:          req.Tipo,
		Titulo:        req.Titulo,
		Descripcion:   req.Descripcion,
		URL:           result.URL,
		URLCloudinary: &result.URL,
		PublicID:      &result.PublicID,
		StorageType:   models.StorageCloudinary,
		Autor:         req.Autor,
		Etiquetas:     req.Etiquetas,
	}

	if err := s.store.Create(ctx, recurso); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("id", recurso.ID).
		Str("public_id", result.PublicID).
		Int64("bytes", result.Bytes).
		Msg("Recurso uploaded to media store")

	return &dto.RecursoUploadResponse{
		ID:            recurso.ID,
		Tipo:          recurso.Tipo,
		Titulo:        recurso.Titulo,
		Descripcion:   recurso.Descripcion,
		URL:           result.URL,
		URLCloudinary: result.URL,
		PublicID:      result.PublicID,
		Autor:         recurso.Autor,
		Etiquetas:     recurso.Etiquetas,
		CloudinaryData: dto.CloudinaryData{
			ResourceType: resourceType(contentType),
			Format:       strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")),
			Size:         fileHeader.Size,
			Duration:     nil,
		},
		Mensaje: "Archivo subido y guardado exitosamente",
	}, nil
}

// UploadLocal writes a file to the upload directory and records the resource.
// The file lands on disk before the request is fully validated, so every
// failure after the write removes it again.
func (s *recursoService) UploadLocal(ctx context.Context, req *dto.RecursoRequest, fileHeader *multipart.FileHeader) (*dto.RecursoUploadLocalResponse, error) {
	if fileHeader == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrMissingFile, "No se ha proporcionado un archivo")
	}

	stored, err := s.local.Save(fileHeader)
	if err != nil {
		custom := apperrors.NewCustomError(apperrors.ErrMediaUpload, err.Error())
		return nil, custom.WithDetails("Error al subir archivo localmente")
	}

	if err := validateUploadRequest(req, fileHeader); err != nil {
		s.discardLocal(stored.Name)
		return nil, err
	}

	publicID := "local:" + stored.Name
	recurso := &models.Recurso{
		Tipo:        req.Tipo,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		URL:         stored.URL,
		PublicID:    &publicID,
		StorageType: models.StorageLocal,
		Autor:       req.Autor,
		Etiquetas:   req.Etiquetas,
	}

	if err := s.store.Create(ctx, recurso); err != nil {
		s.discardLocal(stored.Name)
		return nil, err
	}

	logger.Info().Int64("id", recurso.ID).Str("filename", stored.Name).Msg("Recurso stored locally")

	return &dto.RecursoUploadLocalResponse{
		ID:          recurso.ID,
		Tipo:        recurso.Tipo,
		Titulo:      recurso.Titulo,
		Descripcion: recurso.Descripcion,
		URL:         stored.URL,
		Storage:     models.StorageLocal,
		Filename:    stored.Name,
		Autor:       recurso.Autor,
		Etiquetas:   recurso.Etiquetas,
		FileData: dto.FileData{
			Mimetype: fileContentType(fileHeader),
			Size:     fileHeader.Size,
			SizeMB:   fmt.Sprintf("%.2f", float64(fileHeader.Size)/(1024*1024)),
		},
		Mensaje: "Archivo subido localmente y recurso creado exitosamente",
	}, nil
}

// discardLocal is the best-effort cleanup of a file written before a later
// step failed
func (s *recursoService) discardLocal(name string) {
	if err := s.local.Remove(name); err != nil {
		logger.Warn().Err(err).Str("filename", name).Msg("Failed to remove discarded upload")
	}
}
