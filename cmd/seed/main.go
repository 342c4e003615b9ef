// seed carga el catálogo de demostración (bodegas, ubicaciones, límites de rack,
// productos y empleados) en PostgreSQL, en una sola transacción.
//
// Uso: go run ./cmd/seed [ruta/catalog.yaml]
// Por defecto usa cmd/seed/catalog.yaml. Con -token imprime un JWT por empleado.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	printTokens := flag.Bool("token", false, "imprime un JWT por empleado cargado")
	flag.Parse()

	path := "cmd/seed/catalog.yaml"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := run(context.Background(), cfg, log, path, *printTokens); err != nil {
		log.Error().Err(err).Str("file", path).Msg("seed")
		os.Exit(1)
	}
}

// run carga el catálogo; los defer (rollback, cierre del pool) corren antes de salir.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, path string, printTokens bool) error {
	var seed dto.CatalogSeed
	if err := config.LoadFixture(path, &seed); err != nil {
		return fmt.Errorf("leer catálogo: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migraciones: %w", err)
		}
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var writer repository.CatalogWriter = postgres.NewCatalogWriter(tx)
	res, err := documents.NewCatalogUseCase(writer).Load(ctx, seed)
	if err != nil {
		return fmt.Errorf("cargar catálogo: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar catálogo: %w", err)
	}

	log.Info().
		Str("file", path).
		Int("warehouses", res.Warehouses).
		Int("locations", res.Locations).
		Int("rack_ceilings", res.RackCeilings).
		Int("products", res.Products).
		Int("employees", res.Employees).
		Msg("catálogo cargado")

	if !printTokens {
		return nil
	}
	for _, e := range seed.Employees {
		if e.Inactive || e.ID == 0 {
			continue
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, e.ID, e.Role, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			return fmt.Errorf("generar token para %s: %w", e.Login, err)
		}
		fmt.Printf("%s (%s): Bearer %s\n", e.Login, e.Role, tok)
	}
	return nil
}
