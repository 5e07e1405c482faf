// Package storage selecciona el adaptador de persistencia según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/colorstock/internal/domain/repository"
	"github.com/jhoicas/colorstock/internal/infrastructure/memory"
	"github.com/jhoicas/colorstock/internal/infrastructure/postgres"
	"github.com/jhoicas/colorstock/internal/infrastructure/sqlstore"
	"github.com/jhoicas/colorstock/pkg/config"
	"github.com/jhoicas/colorstock/pkg/logger"
)

// Open abre el repositorio configurado. close libera la conexión; siempre es no-nil.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repo repository.SnapshotRepository, close func(), err error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, func() {}, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		r, err := postgres.NewSnapshotRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("db", cfg.DB.DBName).Msg("almacenamiento listo")
		return r, pool.Close, nil

	case config.DriverSQLite, config.DriverMySQL:
		var s *sqlstore.Store
		if cfg.Store.Driver == config.DriverSQLite {
			s, err = sqlstore.OpenSQLite(ctx, cfg.Store.SQLitePath)
		} else {
			s, err = sqlstore.OpenMySQL(ctx, cfg.Store.MySQLDSN)
		}
		if err != nil {
			return nil, func() {}, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("path", cfg.Store.SQLitePath).Msg("almacenamiento listo")
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn().Err(err).Msg("cerrar almacenamiento")
			}
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return memory.NewSnapshotStore(nil), func() {}, nil
	}
	return nil, func() {}, fmt.Errorf("STORE_DRIVER %q no soportado", cfg.Store.Driver)
}
