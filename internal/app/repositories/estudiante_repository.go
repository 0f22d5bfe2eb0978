package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sicfor/backend/internal/app/models"
	"github.com/sicfor/backend/internal/db"
	"github.com/sicfor/backend/internal/pkg/apperrors"
	"github.com/sicfor/backend/internal/pkg/dberrors"
)

// EstudianteRepository handles database operations for students
type EstudianteRepository struct {
	db *db.PostgresDB
}

// NewEstudianteRepository creates a new student repository
func NewEstudianteRepository(database *db.PostgresDB) *EstudianteRepository {
	return &EstudianteRepository{
		db: database,
	}
}

const estudianteColumns = `
	id, fotografia, nombres, apellidos, tipo_documento, numero_identificacion,
	to_char(fecha_nacimiento, 'YYYY-MM-DD'),
	departamento_nacimiento, municipio_nacimiento,
	departamento_residencia, municipio_residencia,
	zona, direccion, email, celular
`

func scanEstudiante(row pgx.Row, e *models.Estudiante) error {
	return row.Scan(
		&e.ID,
		&e.Fotografia,
		&e.Nombres,
		&e.Apellidos,
		&e.TipoDocumento,
		&e.NumeroIdentificacion,
		&e.FechaNacimiento,
		&e.DepartamentoNacimiento,
		&e.MunicipioNacimiento,
		&e.DepartamentoResidencia,
		&e.MunicipioResidencia,
		&e.Zona,
		&e.Direccion,
		&e.Email,
		&e.Celular,
	)
}

// GetAll retrieves every student ordered by surname and name
func (r *EstudianteRepository) GetAll(ctx context.Context) ([]models.Estudiante, error) {
	query := `SELECT ` + estudianteColumns + ` FROM estudiantes ORDER BY apellidos, nombres`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	estudiantes := make([]models.Estudiante, 0)
	for rows.Next() {
		var e models.Estudiante
		if err := scanEstudiante(rows, &e); err != nil {
			return nil, err
		}
		estudiantes = append(estudiantes, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return estudiantes, nil
}

// GetByID retrieves a single student by ID
func (r *EstudianteRepository) GetByID(ctx context.Context, id int64) (*models.Estudiante, error) {
	query := `SELECT ` + estudianteColumns + ` FROM estudiantes WHERE id = $1`

	var e models.Estudiante
	err := scanEstudiante(r.db.Pool.QueryRow(ctx, query, id), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEstudianteNotFound
		}
		return nil, fmt.Errorf("error retrieving estudiante: %w", err)
	}

	return &e, nil
}

// GetByNumeroIdentificacion retrieves a single student by identification number
func (r *EstudianteRepository) GetByNumeroIdentificacion(ctx context.Context, numero string) (*models.Estudiante, error) {
	query := `SELECT ` + estudianteColumns + ` FROM estudiantes WHERE numero_identificacion = $1`

	var e models.Estudiante
	err := scanEstudiante(r.db.Pool.QueryRow(ctx, query, numero), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEstudianteNotFound
		}
		return nil, fmt.Errorf("error retrieving estudiante: %w", err)
	}

	return &e, nil
}

// duplicateExists checks for another row holding the same identification
// number or email. excludeID skips the row being updated; pass 0 on insert.
func duplicateExists(ctx context.Context, tx pgx.Tx, numero, email string, excludeID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM estudiantes
			WHERE (numero_identificacion = $1 OR email = $2) AND id <> $3
		)
	`, numero, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking for duplicate estudiante: %w", err)
	}
	return exists, nil
}

// Create inserts a new student and fills in its assigned ID. The duplicate
// check and the insert run in one transaction; the unique indexes on
// numero_identificacion and email back the check against concurrent writers.
func (r *EstudianteRepository) Create(ctx context.Context, e *models.Estudiante) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		exists, err := duplicateExists(ctx, tx, e.NumeroIdentificacion, e.Email, 0)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrEstudianteDuplicado
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO estudiantes (
				fotografia, nombres, apellidos, tipo_documento, numero_identificacion,
				fecha_nacimiento, departamento_nacimiento, municipio_nacimiento,
				departamento_residencia, municipio_residencia, zona, direccion, email, celular
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id
		`,
			e.Fotografia,
			e.Nombres,
			e.Apellidos,
			e.TipoDocumento,
			e.NumeroIdentificacion,
			e.FechaNacimiento,
			e.DepartamentoNacimiento,
			e.MunicipioNacimiento,
			e.DepartamentoResidencia,
			e.MunicipioResidencia,
			e.Zona,
			e.Direccion,
			e.Email,
			e.Celular,
		).Scan(&e.ID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrEstudianteDuplicado
			}
			return fmt.Errorf("error creating estudiante: %w", err)
		}

		return nil
	})
}

// Update fully replaces a student row, keeping the same duplicate guarantees
// as Create.
func (r *EstudianteRepository) Update(ctx context.Context, e *models.Estudiante) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		exists, err := duplicateExists(ctx, tx, e.NumeroIdentificacion, e.Email, e.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrEstudianteDuplicado
		}

		cmdTag, err := tx.Exec(ctx, `
			UPDATE estudiantes
			SET fotografia = $1, nombres = $2, apellidos = $3, tipo_documento = $4,
				numero_identificacion = $5, fecha_nacimiento = $6,
				departamento_nacimiento = $7, municipio_nacimiento = $8,
				departamento_residencia = $9, municipio_residencia = $10,
				zona = $11, direccion = $12, email = $13, celular = $14
			WHERE id = $15
		`,
			e.Fotografia,
			e.Nombres,
			e.Apellidos,
			e.TipoDocumento,
			e.NumeroIdentificacion,
			e.FechaNacimiento,
			e.DepartamentoNacimiento,
			e.MunicipioNacimiento,
			e.DepartamentoResidencia,
			e.MunicipioResidencia,
			e.Zona,
			e.Direccion,
			e.Email,
			e.Celular,
			e.ID,
		)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrEstudianteDuplicado
			}
			return fmt.Errorf("error updating estudiante: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrEstudianteNotFound
		}

		return nil
	})
}

// Delete removes a student by ID
func (r *EstudianteRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM estudiantes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting estudiante: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEstudianteNotFound
	}

	return nil
}
