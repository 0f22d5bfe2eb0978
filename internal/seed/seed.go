package seed

import (
	"context"

	"github.com/sicfor/backend/internal/app/models"
	"github.com/sicfor/backend/internal/pkg/logger"
)

// RecursoSeeder is the minimal persistence surface seeding needs
type RecursoSeeder interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, recurso *models.Recurso) error
}

var sampleRecursos = []models.Recurso{
	{
		Tipo:        models.TipoPDF,
		Titulo:      "Guía JavaScript ES6",
		Descripcion: "Introducción a características modernas de JavaScript",
		URL:         "#",
		StorageType: models.StorageURL,
		Autor:       "Grupo E",
		Etiquetas:   "javascript,web,programación",
	},
	{
		Tipo:        models.TipoGuias,
		Titulo:      "Metodología Ágil",
		Descripcion: "Guía práctica sobre desarrollo ágil",
		URL:         "#",
		StorageType: models.StorageURL,
		Autor:       "Grupo E",
		Etiquetas:   "agile,metodología,gestión",
	},
	{
		Tipo:        models.TipoVideos,
		Titulo:      "Tutorial React Hooks",
		Descripcion: "Series de videos sobre React y Hooks",
		URL:         "#",
		StorageType: models.StorageURL,
		Autor:       "Grupo E",
		Etiquetas:   "react,hooks,frontend",
	},
	{
		Tipo:        models.TipoEnlaces,
		Titulo:      "Documentación MDN",
		Descripcion: "Referencia oficial de tecnologías web",
		URL:         "https://developer.mozilla.org",
		StorageType: models.StorageURL,
		Autor:       "Mozilla",
		Etiquetas:   "documentación,referencia,web",
	},
}

// SeedRecursos inserts the sample rows when the table is empty
func SeedRecursos(ctx context.Context, store RecursoSeeder) error {
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	if total > 0 {
		logger.Debug().Int64("total", total).Msg("Recursos already present, skipping seed")
		return nil
	}

	for i := range sampleRecursos {
		recurso := sampleRecursos[i]
		if err := store.Create(ctx, &recurso); err != nil {
			return err
		}
	}

	logger.Info().Int("count", len(sampleRecursos)).Msg("Sample recursos inserted")
	return nil
}
