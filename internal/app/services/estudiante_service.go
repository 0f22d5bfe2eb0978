package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/sicfor/backend/internal/app/models"
	"github.com/sicfor/backend/internal/app/models/dto"
	"github.com/sicfor/backend/internal/pkg/apperrors"
	"github.com/sicfor/backend/internal/pkg/filestorage"
	"github.com/sicfor/backend/internal/pkg/logger"
	"github.com/sicfor/backend/internal/pkg/mediastore"
)

// Profile photo constraints
const (
	maxFotoSizeMB = 5
	maxFotoSize   = maxFotoSizeMB << 20

	fotoResizeLimit = "800x800"
	fotoQuality     = "auto"
)

// EstudianteStore is the persistence surface the student service depends on.
type EstudianteStore interface {
	GetAll(ctx context.Context) ([]models.Estudiante, error)
	GetByID(ctx context.Context, id int64) (*models.Estudiante, error)
	GetByNumeroIdentificacion(ctx context.Context, numero string) (*models.Estudiante, error)
	Create(ctx context.Context, estudiante *models.Estudiante) error
	Update(ctx context.Context, estudiante *models.Estudiante) error
	Delete(ctx context.Context, id int64) error
}

// EstudianteService defines the business operations of the student service
type EstudianteService interface {
	GetAll(ctx context.Context) ([]models.Estudiante, error)
	GetByID(ctx context.Context, id int64) (*models.Estudiante, error)
	GetByNumeroIdentificacion(ctx context.Context, numero string) (*models.Estudiante, error)
	Create(ctx context.Context, req *dto.EstudianteRequest) (int64, error)
	Update(ctx context.Context, id int64, req *dto.EstudianteRequest) error
	Delete(ctx context.Context, id int64) error
	UploadFoto(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.FotoUploadResponse, error)
}

type estudianteService struct {
	store      EstudianteStore
	media      mediastore.Uploader
	baseFolder string
}

// NewEstudianteService creates a new student service. media may be nil when
// no cloud store is configured; photo uploads are then rejected at request
// time.
func NewEstudianteService(store EstudianteStore, media mediastore.Uploader, baseFolder string) EstudianteService {
	return &estudianteService{
		store:      store,
		media:      media,
		baseFolder: baseFolder,
	}
}

func (s *estudianteService) GetAll(ctx context.Context) ([]models.Estudiante, error) {
	return s.store.GetAll(ctx)
}

func (s *estudianteService) GetByID(ctx context.Context, id int64) (*models.Estudiante, error) {
	return s.store.GetByID(ctx, id)
}

func (s *estudianteService) GetByNumeroIdentificacion(ctx context.Context, numero string) (*models.Estudiante, error) {
	return s.store.GetByNumeroIdentificacion(ctx, numero)
}

func estudianteFromRequest(req *dto.EstudianteRequest) *models.Estudiante {
	return &models.Estudiante{
		Fotografia:             req.Fotografia,
		Nombres:                req.Nombres,
		Apellidos:              req.Apellidos,
		TipoDocumento:          req.TipoDocumento,
		NumeroIdentificacion:   req.NumeroIdentificacion,
		FechaNacimiento:        req.FechaNacimiento,
		DepartamentoNacimiento: req.DepartamentoNacimiento,
		MunicipioNacimiento:    req.MunicipioNacimiento,
		DepartamentoResidencia: req.DepartamentoResidencia,
		MunicipioResidencia:    req.MunicipioResidencia,
		Zona:                   req.Zona,
		Direccion:              req.Direccion,
		Email:                  req.Email,
		Celular:                req.Celular,
	}
}

func (s *estudianteService) Create(ctx context.Context, req *dto.EstudianteRequest) (int64, error) {
	estudiante := estudianteFromRequest(req)

	if err := s.store.Create(ctx, estudiante); err != nil {
		if errors.Is(err, apperrors.ErrEstudianteDuplicado) {
			return 0, apperrors.NewCustomError(apperrors.ErrEstudianteDuplicado, "Estudiante ya registrado")
		}
		return 0, err
	}

	logger.Info().
		Int64("id", estudiante.ID).
		Str("numero_identificacion", estudiante.NumeroIdentificacion).
		Msg("Estudiante created")

	return estudiante.ID, nil
}

func (s *estudianteService) Update(ctx context.Context, id int64, req *dto.EstudianteRequest) error {
	estudiante := estudianteFromRequest(req)
	estudiante.ID = id

	if err := s.store.Update(ctx, estudiante); err != nil {
		if errors.Is(err, apperrors.ErrEstudianteDuplicado) {
			return apperrors.NewCustomError(apperrors.ErrEstudianteDuplicado,
				"Ya existe otro estudiante con ese documento o email")
		}
		return err
	}

	return nil
}

func (s *estudianteService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("id", id).Msg("Estudiante deleted")
	return nil
}

// UploadFoto stores a profile photo in the media store and returns its URL.
// Nothing is persisted here: the caller sends the URL back through a
// follow-up create or update.
func (s *estudianteService) UploadFoto(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.FotoUploadResponse, error) {
	if fileHeader == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrMissingFile, "No se ha proporcionado un archivo")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewValidationError("Solo se permiten archivos de imagen")
	}

	if fileHeader.Size > maxFotoSize {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"La imagen supera el tamaño máximo de %d MB", maxFotoSizeMB))
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

	publicID := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filestorage.SanitizeFilename(fileHeader.Filename))

	result, err := s.media.Upload(ctx, file, fileHeader.Size, mediastore.UploadOptions{
		Folder:      path.Join(s.baseFolder, "fotos"),
		PublicID:    publicID,
		ContentType: contentType,
		ResizeLimit: fotoResizeLimit,
		Quality:     fotoQuality,
	})
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Photo upload failed")
		custom := apperrors.NewCustomError(apperrors.ErrMediaUpload, err.Error())
		return nil, custom.WithDetails("Error al subir la fotografía")
	}

	logger.Info().Str("public_id", result.PublicID).Int64("bytes", result.Bytes).Msg("Photo uploaded")

	return &dto.FotoUploadResponse{
		URL:      result.URL,
		PublicID: result.PublicID,
	}, nil
}
