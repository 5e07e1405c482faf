package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrInvalidDate        = errors.New("formato de fecha inválido, use AAAA-MM-DD")
	ErrDuplicateReference = errors.New("la referencia ya existe")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrPersistence        = errors.New("error de persistencia")
	ErrUnauthorized       = errors.New("no autorizado")
)

// InsufficientStockError lleva el stock actual y la cantidad pedida para mostrarlos al usuario.
type InsufficientStockError struct {
	Current   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: actual %s kg, solicitado %s kg",
		e.Current.StringFixed(2), e.Requested.StringFixed(2))
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// PersistenceError envuelve una falla de carga o guardado.
// Committed=true indica que la mutación ya quedó aplicada en memoria y solo falta persistirla.
type PersistenceError struct {
	Op        string // load | save
	Committed bool
	Err       error
}

func (e *PersistenceError) Error() string {
	if e.Committed {
		return fmt.Sprintf("guardado en memoria pero no persistido (%s): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Is permite errors.Is(err, ErrPersistence).
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error { return e.Err }
