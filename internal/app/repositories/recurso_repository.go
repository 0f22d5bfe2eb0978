package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sicfor/backend/internal/app/models"
	"github.com/sicfor/backend/internal/app/models/dto"
	"github.com/sicfor/backend/internal/pkg/apperrors"
)

// RecursoRepository handles database operations for resources
type RecursoRepository struct {
	db *pgxpool.Pool
}

// NewRecursoRepository creates a new resource repository
func NewRecursoRepository(db *pgxpool.Pool) *RecursoRepository {
	return &RecursoRepository{
		db: db,
	}
}

const recursoColumns = `
	id, tipo, titulo, COALESCE(descripcion, ''), url, url_cloudinary, public_id,
	storage_type, COALESCE(autor, ''), COALESCE(etiquetas, ''),
	fecha_creacion, fecha_actualizacion
`

func scanRecurso(row pgx.Row, recurso *models.Recurso) error {
	return row.Scan(
		&recurso.ID,
		&recurso.Tipo,
		&recurso.Titulo,
		&recurso.Descripcion,
		&recurso.URL,
		&recurso.URLCloudinary,
		&recurso.PublicID,
		&recurso.StorageType,
		&recurso.Autor,
		&recurso.Etiquetas,
		&recurso.FechaCreacion,
		&recurso.FechaActualizacion,
	)
}

func (r *RecursoRepository) queryRecursos(ctx context.Context, query string, args ...interface{}) ([]models.Recurso, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recursos := make([]models.Recurso, 0)
	for rows.Next() {
		var recurso models.Recurso
		if err := scanRecurso(rows, &recurso); err != nil {
			return nil, err
		}
		recursos = append(recursos, recurso)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recursos, nil
}

// GetAll retrieves all resources, newest first
func (r *RecursoRepository) GetAll(ctx context.Context) ([]models.Recurso, error) {
	query := `SELECT ` + recursoColumns + ` FROM recursos ORDER BY fecha_creacion DESC`
	return r.queryRecursos(ctx, query)
}

// GetByID retrieves a single resource by ID
func (r *RecursoRepository) GetByID(ctx context.Context, id int64) (*models.Recurso, error) {
	query := `SELECT ` + recursoColumns + ` FROM recursos WHERE id = $1`

	var recurso models.Recurso
	err := scanRecurso(r.db.QueryRow(ctx, query, id), &recurso)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecursoNotFound
		}
		return nil, fmt.Errorf("error retrieving recurso: %w", err)
	}

	return &recurso, nil
}

// GetByTipo retrieves all resources of one type, newest first
func (r *RecursoRepository) GetByTipo(ctx context.Context, tipo string) ([]models.Recurso, error) {
	query := `SELECT ` + recursoColumns + ` FROM recursos WHERE tipo = $1 ORDER BY fecha_creacion DESC`
	return r.queryRecursos(ctx, query, tipo)
}

// Create inserts a new resource and fills in its assigned ID
func (r *RecursoRepository) Create(ctx context.Context, recurso *models.Recurso) error {
	query := `
		INSERT INTO recursos (tipo, titulo, descripcion, url, url_cloudinary, public_id, storage_type, autor, etiquetas)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		recurso.Tipo,
		recurso.Titulo,
		recurso.Descripcion,
		recurso.URL,
		recurso.URLCloudinary,
		recurso.PublicID,
		recurso.StorageType,
		recurso.Autor,
		recurso.Etiquetas,
	).Scan(&recurso.ID)
	if err != nil {
		return fmt.Errorf("error creating recurso: %w", err)
	}

	return nil
}

// Update replaces the six editable fields of a resource
func (r *RecursoRepository) Update(ctx context.Context, recurso *models.Recurso) error {
	query := `
		UPDATE recursos
		SET tipo = $1, titulo = $2, descripcion = $3, url = $4, autor = $5, etiquetas = $6
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		recurso.Tipo,
		recurso.Titulo,
		recurso.Descripcion,
		recurso.URL,
		recurso.Autor,
		recurso.Etiquetas,
		recurso.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating recurso: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecursoNotFound
	}

	return nil
}

// Delete removes a resource by ID
func (r *RecursoRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM recursos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting recurso: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecursoNotFound
	}

	return nil
}

// Stats returns the total row count plus per-type counts
func (r *RecursoRepository) Stats(ctx context.Context) (*dto.EstadisticasResponse, error) {
	stats := &dto.EstadisticasResponse{PorTipo: make([]dto.TipoCantidad, 0)}

	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recursos`).Scan(&stats.Total)
	if err != nil {
		return nil, fmt.Errorf("error counting recursos: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT tipo, COUNT(*) AS cantidad FROM recursos GROUP BY tipo`)
	if err != nil {
		return nil, fmt.Errorf("error counting recursos by tipo: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket dto.TipoCantidad
		if err := rows.Scan(&bucket.Tipo, &bucket.Cantidad); err != nil {
			return nil, err
		}
		stats.PorTipo = append(stats.PorTipo, bucket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// Search performs a case-insensitive containment match of q against titulo,
// descripcion and etiquetas, optionally narrowed to one tipo, newest first.
func (r *RecursoRepository) Search(ctx context.Context, q, tipo string) ([]models.Recurso, error) {
	pattern := "%" + q + "%"

	query := `SELECT ` + recursoColumns + `
		FROM recursos
		WHERE (titulo ILIKE $1 OR descripcion ILIKE $1 OR etiquetas ILIKE $1)`
	args := []interface{}{pattern}

	if tipo != "" {
		query += ` AND tipo = $2`
		args = append(args, tipo)
	}

	query += ` ORDER BY fecha_creacion DESC`

	return r.queryRecursos(ctx, query, args...)
}

// Count returns the number of stored resources
func (r *RecursoRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recursos`).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting recursos: %w", err)
	}
	return total, nil
}

// Ping runs a trivial query to verify database connectivity
func (r *RecursoRepository) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRow(ctx, `SELECT 1`).Scan(&one)
}
