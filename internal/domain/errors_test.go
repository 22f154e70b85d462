package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodega-api/internal/domain"
)

func TestErroresTipados_SeReconocenPorSentinela(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{domain.NewValidationError("quantity", "debe ser mayor que cero"), domain.ErrValidation},
		{domain.NewNotFoundError(domain.EntityItem, "x"), domain.ErrNotFound},
		{&domain.InsufficientStockError{Available: 1, Requested: 2}, domain.ErrInsufficientStock},
		{&domain.InvalidStateError{Reason: "r"}, domain.ErrInvalidState},
		{&domain.AlreadyUndoneError{Entity: domain.EntityTransaction, ID: "t"}, domain.ErrAlreadyUndone},
		{&domain.PersistenceError{Op: "commit", Err: errors.New("conn reset")}, domain.ErrPersistence},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("operación: %w", tc.err)
		assert.ErrorIs(t, wrapped, tc.want, tc.err.Error())
	}
}

func TestInvalidState_NoExponeLaCausa(t *testing.T) {
	err := &domain.InvalidStateError{
		Reason: "revertir dejaría stock negativo",
		Cause:  &domain.InsufficientStockError{SKU: "SKU-1", Location: "A-01-01", Available: 1, Requested: 3},
	}
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "SKU-1")
}

func TestInsufficientStock_Mensaje(t *testing.T) {
	err := &domain.InsufficientStockError{ItemID: "id-1", LocationID: "loc-1", Available: 4, Requested: 7}
	assert.Equal(t, "cantidad insuficiente para id-1 en loc-1: disponible 4, solicitado 7", err.Error())

	err.SKU, err.Location = "TOR-001", "A-01-02"
	assert.Equal(t, "cantidad insuficiente para TOR-001 en A-01-02: disponible 4, solicitado 7", err.Error())
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, domain.IsDomainError(domain.NewNotFoundError(domain.EntityStock, "s")))
	assert.False(t, domain.IsDomainError(&domain.PersistenceError{Op: "begin", Err: errors.New("x")}))
	assert.False(t, domain.IsDomainError(errors.New("otro")))
}
