package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sicfor/backend/internal/pkg/logger"
)

// StoredFile describes a file written to the local upload directory.
type StoredFile struct {
	// Name is the generated unique filename on disk
	Name string
	// URL is the path under which the static file server exposes the file
	URL string
}

// LocalStorage handles saving uploaded files to the local filesystem.
type LocalStorage struct {
	basePath  string // root directory where files are written
	urlPrefix string // URL path prefix for serving stored files
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// Stored files are addressed as urlPrefix/<generated-name>.
func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath:  basePath,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}, nil
}

// Save writes an uploaded file under a generated unique name
// (<unix-ms>-<token>-<original-name>) and returns where it landed.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	token := strings.Split(uuid.New().String(), "-")[0]
	uniqueName := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), token, filepath.Base(fileHeader.Filename))

	dstPath := filepath.Join(ls.basePath, uniqueName)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueName).Msg("File saved")
	return &StoredFile{
		Name: uniqueName,
		URL:  ls.urlPrefix + "/" + uniqueName,
	}, nil
}

// Remove deletes a stored file by its generated name. Removing a file that
// no longer exists is not an error.
func (ls *LocalStorage) Remove(name string) error {
	filename := filepath.Base(name)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid file name: %s", name)
	}

	physicalPath := filepath.Join(ls.basePath, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// BasePath returns the directory the storage writes into, for mounting the
// static file route.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}
