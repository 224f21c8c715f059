// Comando migrate: aplica las migraciones SQL pendientes de migrations/ en
// orden lexicográfico. Se ejecuta en el despliegue, antes de arrancar la API;
// el esquema nunca se toca en tiempo de ejecución.
package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/jhoicas/Vitrina-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Vitrina-api/pkg/config"
	"github.com/jhoicas/Vitrina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		log.Fatal().Err(err).Msg("crear tabla schema_migrations")
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		log.Fatal().Err(err).Msg("listar migraciones")
	}
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		version := filepath.Base(file)

		var exists bool
		if err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
		).Scan(&exists); err != nil {
			log.Fatal().Err(err).Str("version", version).Msg("consultar migración")
		}
		if exists {
			continue
		}

		sql, err := os.ReadFile(file)
		if err != nil {
			log.Fatal().Err(err).Str("version", version).Msg("leer migración")
		}

		// Migración + registro en una sola transacción: o se aplica completa
		// y queda anotada, o no pasa nada.
		tx, err := pool.Begin(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir transacción")
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			log.Fatal().Err(err).Str("version", version).Msg("aplicar migración")
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`, version,
		); err != nil {
			_ = tx.Rollback(ctx)
			log.Fatal().Err(err).Str("version", version).Msg("registrar migración")
		}
		if err := tx.Commit(ctx); err != nil {
			log.Fatal().Err(err).Str("version", version).Msg("confirmar migración")
		}

		log.Info().Str("version", version).Msg("migración aplicada")
		applied++
	}

	log.Info().Int("aplicadas", applied).Int("total", len(files)).Msg("migraciones al día")
}
