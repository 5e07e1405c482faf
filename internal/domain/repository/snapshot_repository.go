package repository

import (
	"context"

	"github.com/jhoicas/colorstock/internal/domain/entity"
)

// SnapshotRepository define el puerto de persistencia del estado completo (DIP).
// Load devuelve un snapshot vacío si el almacenamiento aún no existe (el adaptador crea el esquema).
// Save debe ser atómico: si falla, los datos persistidos antes quedan intactos.
type SnapshotRepository interface {
	Load(ctx context.Context) (*entity.Snapshot, error)
	Save(ctx context.Context, snap *entity.Snapshot) error
}
