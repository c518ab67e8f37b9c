// seed importa ubicaciones, proveedores, clientes y categorías desde un CSV o XLSX con
// columnas kind,name,code,email,phone. La primera fila puede ser la cabecera.
//
// Uso: go run ./cmd/seed [-latin1] referencias.csv
// El almacenamiento se toma de la misma configuración que la API (DB_DRIVER, DATABASE_URL, SQLITE_PATH...).
// Los nombres o códigos ya existentes se omiten y se cuentan.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-latin1] archivo.csv|archivo.xlsx")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "bodega-seed"})

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir archivo")
	}
	defer f.Close()

	records, err := readRecords(path, f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer archivo")
	}
	rows, invalid := parseRows(records)
	for _, line := range invalid {
		log.Warn().Int("line", line).Msg("fila omitida: tipo desconocido o sin nombre")
	}

	ctx := context.Background()
	refs, closeStore, err := openReferences(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión al almacenamiento")
	}
	defer closeStore()

	s, err := importRows(ctx, usecase.NewReferenceUseCase(refs), rows, func(row seedRow, err error) {
		log.Info().Int("line", row.line).Str("kind", string(row.kind)).Str("name", row.req.Name).
			Err(err).Msg("fila omitida")
	})
	logSummary(log, s, len(invalid))
	if err != nil {
		log.Error().Err(err).Msg("importación interrumpida")
		closeStore()
		os.Exit(1)
	}
}

func logSummary(log zerolog.Logger, s summary, unparsable int) {
	log.Info().
		Int("created", s.Created).
		Int("duplicates", s.Duplicates).
		Int("invalid", s.Invalid+unparsable).
		Msg("importación terminada")
}

func openReferences(ctx context.Context, cfg config.DBConfig) (repository.ReferenceRepository, func(), error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sqlite.NewReferenceRepository(db), func() { _ = db.Close() }, nil
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return postgres.NewReferenceRepository(pool), pool.Close, nil
}
