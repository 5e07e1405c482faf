// Package memory implementa el almacenamiento del snapshot en memoria del proceso.
// Sirve para desarrollo (STORE_DRIVER=memory) y para pruebas del motor.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/domain/repository"
)

// ErrSaveFailed error devuelto por Save cuando se fuerza una falla.
var ErrSaveFailed = errors.New("memory: guardado deshabilitado")

// SnapshotStore guarda una copia profunda del último snapshot.
type SnapshotStore struct {
	mu       sync.Mutex
	snap     *entity.Snapshot
	failSave bool
	saves    int
}

// NewSnapshotStore crea el store; initial puede ser nil (inventario vacío).
func NewSnapshotStore(initial *entity.Snapshot) *SnapshotStore {
	return &SnapshotStore{snap: initial.Clone()}
}

var _ repository.SnapshotRepository = (*SnapshotStore)(nil)

// Load devuelve una copia del snapshot guardado.
func (s *SnapshotStore) Load(ctx context.Context) (*entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone(), nil
}

// Save reemplaza el snapshot guardado por una copia de snap.
func (s *SnapshotStore) Save(ctx context.Context, snap *entity.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return ErrSaveFailed
	}
	s.snap = snap.Clone()
	s.saves++
	return nil
}

// FailSaves activa o desactiva la falla forzada de Save.
func (s *SnapshotStore) FailSaves(fail bool) {
	s.mu.Lock()
	s.failSave = fail
	s.mu.Unlock()
}

// Saves cantidad de guardados exitosos.
func (s *SnapshotStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
