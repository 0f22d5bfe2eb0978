package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sicfor/backend/internal/app/models"
	"github.com/sicfor/backend/internal/app/models/dto"
	"github.com/sicfor/backend/internal/pkg/filestorage"
	"github.com/sicfor/backend/internal/pkg/mediastore"
)

// newFileHeader builds a real multipart file so the header can be opened by
// the code under test, with a controlled content type.
func newFileHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(64 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

// sizedFileHeader fabricates a header for size-validation tests. It cannot
// be opened, which is fine because oversize uploads are rejected before the
// file is read.
func sizedFileHeader(filename, contentType string, size int64) *multipart.FileHeader {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: filename,
		Header:   header,
		Size:     size,
	}
}

// fakeRecursoStore is an in-memory RecursoStore capturing writes.
type fakeRecursoStore struct {
	created []*models.Recurso
	updated []*models.Recurso
	deleted []int64

	recursos  []models.Recurso
	stats     *dto.EstadisticasResponse
	createErr error
	updateErr error
	deleteErr error
	pingErr   error

	searchQ    string
	searchTipo string
}

func (f *fakeRecursoStore) GetAll(ctx context.Context) ([]models.Recurso, error) {
	return f.recursos, nil
}

func (f *fakeRecursoStore) GetByID(ctx context.Context, id int64) (*models.Recurso, error) {
	for i := range f.recursos {
		if f.recursos[i].ID == id {
			return &f.recursos[i], nil
		}
	}
	return nil, fmt.Errorf("no recurso %d", id)
}

func (f *fakeRecursoStore) GetByTipo(ctx context.Context, tipo string) ([]models.Recurso, error) {
	out := make([]models.Recurso, 0)
	for _, r := range f.recursos {
		if r.Tipo == tipo {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecursoStore) Create(ctx context.Context, recurso *models.Recurso) error {
	if f.createErr != nil {
		return f.createErr
	}
	recurso.ID = int64(len(f.created) + 1)
	f.created = append(f.created, recurso)
	return nil
}

func (f *fakeRecursoStore) Update(ctx context.Context, recurso *models.Recurso) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, recurso)
	return nil
}

func (f *fakeRecursoStore) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRecursoStore) Stats(ctx context.Context) (*dto.EstadisticasResponse, error) {
	return f.stats, nil
}

func (f *fakeRecursoStore) Search(ctx context.Context, q, tipo string) ([]models.Recurso, error) {
	f.searchQ, f.searchTipo = q, tipo
	return f.recursos, nil
}

func (f *fakeRecursoStore) Ping(ctx context.Context) error {
	return f.pingErr
}

// fakeLocalStore records saves and removals without touching the disk.
type fakeLocalStore struct {
	saveErr error
	saved   int
	removed []string
}

func (f *fakeLocalStore) Save(fileHeader *multipart.FileHeader) (*filestorage.StoredFile, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved++
	name := fmt.Sprintf("1700000000000-abc123-%s", fileHeader.Filename)
	return &filestorage.StoredFile{Name: name, URL: "/uploads/" + name}, nil
}

func (f *fakeLocalStore) Remove(name string) error {
	f.removed = append(f.removed, name)
	return nil
}

// fakeUploader records upload options and hands back a deterministic result.
type fakeUploader struct {
	err      error
	lastOpts mediastore.UploadOptions
	lastSize int64
}

func (f *fakeUploader) Upload(ctx context.Context, reader io.Reader, size int64, opts mediastore.UploadOptions) (*mediastore.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return nil, err
	}
	f.lastOpts = opts
	f.lastSize = size

	key := path.Join(opts.Folder, opts.PublicID)
	return &mediastore.UploadResult{
		URL:      "http://localhost:9000/sicfor-media/" + key,
		PublicID: key,
		Bytes:    size,
	}, nil
}

// fakeEstudianteStore is an in-memory EstudianteStore capturing writes.
type fakeEstudianteStore struct {
	created []*models.Estudiante
	updated []*models.Estudiante
	deleted []int64

	estudiantes []models.Estudiante
	createErr   error
	updateErr   error
	deleteErr   error
	getErr      error
}

func (f *fakeEstudianteStore) GetAll(ctx context.Context) ([]models.Estudiante, error) {
	return f.estudiantes, f.getErr
}

func (f *fakeEstudianteStore) GetByID(ctx context.Context, id int64) (*models.Estudiante, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.estudiantes {
		if f.estudiantes[i].ID == id {
			return &f.estudiantes[i], nil
		}
	}
	return nil, fmt.Errorf("no estudiante %d", id)
}

func (f *fakeEstudianteStore) GetByNumeroIdentificacion(ctx context.Context, numero string) (*models.Estudiante, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.estudiantes {
		if f.estudiantes[i].NumeroIdentificacion == numero {
			return &f.estudiantes[i], nil
		}
	}
	return nil, fmt.Errorf("no estudiante %s", numero)
}

func (f *fakeEstudianteStore) Create(ctx context.Context, estudiante *models.Estudiante) error {
	if f.createErr != nil {
		return f.createErr
	}
	estudiante.ID = int64(len(f.created) + 1)
	f.created = append(f.created, estudiante)
	return nil
}

func (f *fakeEstudianteStore) Update(ctx context.Context, estudiante *models.Estudiante) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, estudiante)
	return nil
}

func (f *fakeEstudianteStore) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}
