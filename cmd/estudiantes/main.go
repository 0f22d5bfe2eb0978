package main

import (
	"os"

	"github.com/sicfor/backend/internal/bootstrap"
	"github.com/sicfor/backend/internal/pkg/logger"
	"github.com/sicfor/backend/internal/server"
)

func main() {
	srv, err := server.New(bootstrap.ServiceEstudiantes)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize estudiantes server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
