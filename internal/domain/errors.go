package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrAlreadyUndone     = errors.New("la transacción ya fue revertida")
	ErrPersistence       = errors.New("fallo de persistencia")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// Entidades referenciables en NotFoundError.
const (
	EntityItem        = "item"
	EntityLocation    = "ubicación"
	EntityStock       = "registro de stock"
	EntityTransaction = "transacción"
	EntityBatch       = "lote de ubicación"
)

// ValidationError entrada mal formada; se detecta antes de abrir la unidad de trabajo.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError atajo para construir errores de validación.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// NotFoundError referencia inexistente (item, ubicación, stock, transacción o lote).
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError atajo para construir errores de recurso inexistente.
func NewNotFoundError(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// InsufficientStockError un decremento supera la cantidad actual de la celda.
// Lleva lo necesario para que el operador corrija el conteo físico.
type InsufficientStockError struct {
	ItemID     string
	SKU        string
	LocationID string
	Location   string
	Available  int
	Requested  int
}

func (e *InsufficientStockError) Error() string {
	item := e.SKU
	if item == "" {
		item = e.ItemID
	}
	loc := e.Location
	if loc == "" {
		loc = e.LocationID
	}
	return fmt.Sprintf("cantidad insuficiente para %s en %s: disponible %d, solicitado %d",
		item, loc, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InvalidStateError una reversión dejaría alguna celda en negativo, o la entidad
// no admite la transición pedida.
type InvalidStateError struct {
	Reason string
	Cause  error
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%v)", e.Reason, e.Cause)
	}
	return e.Reason
}

// Is no desenvuelve Cause: un undo rechazado es InvalidState, no InsufficientStock.
func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// AlreadyUndoneError undo sobre una transacción o lote ya revertido.
type AlreadyUndoneError struct {
	Entity string
	ID     string
}

func (e *AlreadyUndoneError) Error() string {
	return fmt.Sprintf("%s %s ya fue revertido", e.Entity, e.ID)
}

func (e *AlreadyUndoneError) Is(target error) bool { return target == ErrAlreadyUndone }

// PersistenceError la unidad de trabajo no pudo completarse por un fallo de infraestructura.
// No es un error de dominio: se expone de forma opaca.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsDomainError indica si err pertenece a la taxonomía de dominio (nunca se reintenta).
func IsDomainError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrAlreadyUndone) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden)
}
