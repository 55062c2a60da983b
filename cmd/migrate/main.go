// Comando migrate aplica o consulta las migraciones de la base de datos.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate status
package main

import (
	"context"
	"os"

	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	dsn := cfg.DB.ConnectionString()
	switch cmd {
	case "up":
		if err := postgres.Migrate(ctx, dsn); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	case "status":
		if err := postgres.MigrationStatus(ctx, dsn); err != nil {
			log.Fatal().Err(err).Msg("estado de migraciones")
		}
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido (up|status)")
	}
}
