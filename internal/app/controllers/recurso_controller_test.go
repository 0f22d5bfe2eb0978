package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicfor/backend/internal/app/controllers"
	"github.com/sicfor/backend/internal/app/models"
	"github.com/sicfor/backend/internal/app/models/dto"
	"github.com/sicfor/backend/internal/app/routes"
	"github.com/sicfor/backend/internal/app/services"
	"github.com/sicfor/backend/internal/pkg/apperrors"
)

// fakeRecursoService returns stubbed data, or its configured error from
// every operation.
type fakeRecursoService struct {
	recursos   []models.Recurso
	recurso    *models.Recurso
	stats      *dto.EstadisticasResponse
	uploadResp *dto.RecursoUploadResponse
	localResp  *dto.RecursoUploadLocalResponse
	err        error
	pingErr    error

	lastUploadReq  *dto.RecursoRequest
	lastUploadFile *multipart.FileHeader
}

var _ services.RecursoService = (*fakeRecursoService)(nil)

func (f *fakeRecursoService) GetAll(ctx context.Context) ([]models.Recurso, error) {
	return f.recursos, f.err
}

func (f *fakeRecursoService) GetByID(ctx context.Context, id int64) (*models.Recurso, error) {
	return f.recurso, f.err
}

func (f *fakeRecursoService) GetByTipo(ctx context.Context, tipo string) ([]models.Recurso, error) {
	return f.recursos, f.err
}

func (f *fakeRecursoService) Create(ctx context.Context, req *dto.RecursoRequest) (*models.Recurso, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Recurso{
		ID:          1,
		Tipo:        req.Tipo,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		URL:         req.URL,
		StorageType: models.StorageURL,
		Autor:       req.Autor,
		Etiquetas:   req.Etiquetas,
	}, nil
}

func (f *fakeRecursoService) Update(ctx context.Context, id int64, req *dto.RecursoRequest) (*models.Recurso, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Recurso{ID: id, Tipo: req.Tipo, Titulo: req.Titulo, URL: req.URL}, nil
}

func (f *fakeRecursoService) Delete(ctx context.Context, id int64) error {
	return f.err
}

func (f *fakeRecursoService) Stats(ctx context.Context) (*dto.EstadisticasResponse, error) {
	return f.stats, f.err
}

func (f *fakeRecursoService) Search(ctx context.Context, q, tipo string) ([]models.Recurso, error) {
	return f.recursos, f.err
}

func (f *fakeRecursoService) Upload(ctx context.Context, req *dto.RecursoRequest, fh *multipart.FileHeader) (*dto.RecursoUploadResponse, error) {
	f.lastUploadReq, f.lastUploadFile = req, fh
	return f.uploadResp, f.err
}

func (f *fakeRecursoService) UploadLocal(ctx context.Context, req *dto.RecursoRequest, fh *multipart.FileHeader) (*dto.RecursoUploadLocalResponse, error) {
	f.lastUploadReq, f.lastUploadFile = req, fh
	return f.localResp, f.err
}

func (f *fakeRecursoService) TestDB(ctx context.Context) error {
	return f.pingErr
}

func newRecursosRouter(svc services.RecursoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRecursosRoutes(router, controllers.NewRecursoController(svc, "sicfor"))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ruta no encontrada"})
	})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestRecursosGetAll(t *testing.T) {
	svc := &fakeRecursoService{recursos: []models.Recurso{
		{ID: 2, Tipo: "pdf", Titulo: "Segundo"},
		{ID: 1, Tipo: "videos", Titulo: "Primero"},
	}}
	router := newRecursosRouter(svc)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/recursos", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got []models.Recurso
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestRecursosGetByIDNotFound(t *testing.T) {
	svc := &fakeRecursoService{err: apperrors.ErrRecursoNotFound}
	router := newRecursosRouter(svc)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/recursos/99", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Recurso no encontrado", decodeBody(t, recorder)["error"])
}

func TestRecursosGetByIDNonNumeric(t *testing.T) {
	router := newRecursosRouter(&fakeRecursoService{})

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/recursos/abc", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Recurso no encontrado", decodeBody(t, recorder)["error"])
}

func TestRecursosCreate(t *testing.T) {
	router := newRecursosRouter(&fakeRecursoService{})

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/recursos", dto.RecursoRequest{
		Tipo:   "pdf",
		Titulo: "Guía",
		URL:    "https://example.com/guia.pdf",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Recurso creado exitosamente", body["mensaje"])
}

func TestRecursosCreateValidationError(t *testing.T) {
	svc := &fakeRecursoService{err: apperrors.NewValidationError("Tipo, título y URL son requeridos")}
	router := newRecursosRouter(svc)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/recursos", dto.RecursoRequest{Tipo: "pdf"})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Tipo, título y URL son requeridos", decodeBody(t, recorder)["error"])
}

func TestRecursosCreateMalformedBody(t *testing.T) {
	router := newRecursosRouter(&fakeRecursoService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recursos", strings.NewReader("{no json"))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Cuerpo de la petición inválido", decodeBody(t, recorder)["error"])
}

func TestRecursosUpdate(t *testing.T) {
	router := newRecursosRouter(&fakeRecursoService{})

	recorder := doJSON(t, router, http.MethodPut, "/api/v1/recursos/4", dto.RecursoRequest{
		Tipo: "guias", Titulo: "Actualizada", URL: "https://example.com",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(4), body["id"])
	assert.Equal(t, "Recurso actualizado exitosamente", body["mensaje"])
}

func TestRecursosDelete(t *testing.T) {
	router := newRecursosRouter(&fakeRecursoService{})

	recorder := doJSON(t, router, http.MethodDelete, "/api/v1/recursos/5", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "Recurso eliminado exitosamente", body["mensaje"])
	assert.Equal(t, float64(5), body["id"])
}

func TestRecursosDeleteNotFound(t *testing.T) {
	svc := &fakeRecursoService{err: apperrors.ErrRecursoNotFound}
	router := newRecursosRouter(svc)

	recorder := doJSON(t, router, http.MethodDelete, "/api/v1/recursos/5", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRecursosStats(t *testing.T) {
	svc := &fakeRecursoService{stats: &dto.EstadisticasResponse{
		Total:   4,
		PorTipo: []dto.TipoCantidad{{Tipo: "pdf", Cantidad: 3}, {Tipo: "videos", Cantidad: 1}},
	}}
	router := newRecursosRouter(svc)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/estadisticas", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var stats dto.EstadisticasResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stats))
	assert.Equal(t, int64(4), stats.Total)
	require.Len(t, stats.PorTipo, 2)
}

func TestRecursosSearchMissingQuery(t *testing.T) {
	svc := &fakeRecursoService{err: apperrors.NewValidationError("Parámetro de búsqueda requerido")}
	router := newRecursosRouter(svc)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/buscar", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Parámetro de búsqueda requerido", decodeBody(t, recorder)["error"])
}

func TestRecursosUploadTooLarge(t *testing.T) {
	svc := &fakeRecursoService{err: apperrors.NewFileTooLargeError(
		"Video demasiado grande. Máximo permitido: 30 MB. Tamaño actual: 31.00 MB")}
	router := newRecursosRouter(svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
	assert.Contains(t, decodeBody(t, recorder)["error"], "Video demasiado grande")
}

func TestRecursosUploadParsesForm(t *testing.T) {
	svc := &fakeRecursoService{uploadResp: &dto.RecursoUploadResponse{
		ID:      9,
		Mensaje: "Archivo subido y guardado exitosamente",
	}}
	router := newRecursosRouter(svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("tipo", "pdf"))
	require.NoError(t, writer.WriteField("titulo", "Guía"))
	require.NoError(t, writer.WriteField("autor", "Grupo E"))
	part, err := writer.CreateFormFile("file", "guia.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("contenido"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, svc.lastUploadReq)
	assert.Equal(t, "pdf", svc.lastUploadReq.Tipo)
	assert.Equal(t, "Guía", svc.lastUploadReq.Titulo)
	assert.Equal(t, "Grupo E", svc.lastUploadReq.Autor)
	require.NotNil(t, svc.lastUploadFile)
	assert.Equal(t, "guia.pdf", svc.lastUploadFile.Filename)
}

func TestRecursosUploadLocal(t *testing.T) {
	svc := &fakeRecursoService{localResp: &dto.RecursoUploadLocalResponse{
		ID:      3,
		Storage: "local",
		Mensaje: "Archivo subido localmente y recurso creado exitosamente",
	}}
	router := newRecursosRouter(svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("tipo", "pdf"))
	require.NoError(t, writer.WriteField("titulo", "Apuntes"))
	part, err := writer.CreateFormFile("file", "apuntes.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload-local", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "local", body["storage"])
}

func TestRecursosTestDB(t *testing.T) {
	router := newRecursosRouter(&fakeRecursoService{})

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/test-db", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Conexión a base de datos exitosa", body["mensaje"])
	assert.Equal(t, "sicfor", body["database"])
}

func TestRecursosTestDBFailure(t *testing.T) {
	svc := &fakeRecursoService{pingErr: assert.AnError}
	router := newRecursosRouter(svc)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/test-db", nil)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, false, decodeBody(t, recorder)["success"])
}

func TestRecursosUnknownRoute(t *testing.T) {
	router := newRecursosRouter(&fakeRecursoService{})

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/no-existe", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Ruta no encontrada", decodeBody(t, recorder)["error"])
}
