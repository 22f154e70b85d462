package entity

import (
	"fmt"
	"time"
)

// Tipos de transacción del libro de inventario.
type TransactionType string

const (
	TransactionTypeAdd    TransactionType = "ADD"
	TransactionTypeRemove TransactionType = "REMOVE"
	TransactionTypeMove   TransactionType = "MOVE"
)

// Estados de una transacción. Solo se permiten ACTIVE→EDITED y ACTIVE/EDITED→UNDONE.
type TransactionStatus string

const (
	TransactionStatusActive TransactionStatus = "ACTIVE"
	TransactionStatusEdited TransactionStatus = "EDITED"
	TransactionStatusUndone TransactionStatus = "UNDONE"
)

// Movement describe qué ubicaciones toca una transacción. Es una variante cerrada:
// Added, Removed o Moved; el tipo determina qué campos tienen sentido.
type Movement interface {
	Type() TransactionType
	isMovement()
}

// Added entrada de stock a una ubicación (putaway).
type Added struct{ To string }

// Removed salida de stock desde una ubicación.
type Removed struct{ From string }

// Moved traslado entre dos ubicaciones.
type Moved struct{ From, To string }

func (Added) Type() TransactionType   { return TransactionTypeAdd }
func (Removed) Type() TransactionType { return TransactionTypeRemove }
func (Moved) Type() TransactionType   { return TransactionTypeMove }

func (Added) isMovement()   {}
func (Removed) isMovement() {}
func (Moved) isMovement()   {}

// CellDelta variación de cantidad sobre la celda (ItemID, LocationID).
type CellDelta struct {
	LocationID string
	Delta      int
}

// Transaction registro inmutable del libro. Solo cambian Status/UndoneBy y,
// en ediciones de lote, Quantity.
type Transaction struct {
	ID        string
	ItemID    string
	Movement  Movement
	Quantity  int
	Status    TransactionStatus
	BatchID   string // vacío si no pertenece a un lote
	CreatedBy string
	UndoneBy  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Type tipo de la transacción según su movimiento.
func (t *Transaction) Type() TransactionType { return t.Movement.Type() }

// FromLocationID ubicación origen ("" para ADD).
func (t *Transaction) FromLocationID() string {
	switch m := t.Movement.(type) {
	case Removed:
		return m.From
	case Moved:
		return m.From
	}
	return ""
}

// ToLocationID ubicación destino ("" para REMOVE).
func (t *Transaction) ToLocationID() string {
	switch m := t.Movement.(type) {
	case Added:
		return m.To
	case Moved:
		return m.To
	}
	return ""
}

// Effect variaciones que la transacción aplicó sobre el stock.
func (t *Transaction) Effect() []CellDelta {
	switch m := t.Movement.(type) {
	case Added:
		return []CellDelta{{LocationID: m.To, Delta: t.Quantity}}
	case Removed:
		return []CellDelta{{LocationID: m.From, Delta: -t.Quantity}}
	case Moved:
		return []CellDelta{
			{LocationID: m.From, Delta: -t.Quantity},
			{LocationID: m.To, Delta: t.Quantity},
		}
	}
	return nil
}

// Compensation variaciones que revierten Effect: el origen recupera, el destino devuelve.
func (t *Transaction) Compensation() []CellDelta {
	eff := t.Effect()
	out := make([]CellDelta, len(eff))
	for i, d := range eff {
		out[i] = CellDelta{LocationID: d.LocationID, Delta: -d.Delta}
	}
	return out
}

// IsUndone indica si la transacción ya fue revertida.
func (t *Transaction) IsUndone() bool { return t.Status == TransactionStatusUndone }

// MovementFromColumns reconstruye la variante desde las columnas persistidas.
func MovementFromColumns(typ TransactionType, from, to *string) (Movement, error) {
	switch typ {
	case TransactionTypeAdd:
		if to == nil {
			return nil, fmt.Errorf("transacción ADD sin ubicación destino")
		}
		return Added{To: *to}, nil
	case TransactionTypeRemove:
		if from == nil {
			return nil, fmt.Errorf("transacción REMOVE sin ubicación origen")
		}
		return Removed{From: *from}, nil
	case TransactionTypeMove:
		if from == nil || to == nil {
			return nil, fmt.Errorf("transacción MOVE sin origen o destino")
		}
		return Moved{From: *from, To: *to}, nil
	}
	return nil, fmt.Errorf("tipo de transacción desconocido: %q", typ)
}

// MovementColumns descompone la variante en columnas nulables para persistirla.
func MovementColumns(m Movement) (from, to *string) {
	switch v := m.(type) {
	case Added:
		return nil, &v.To
	case Removed:
		return &v.From, nil
	case Moved:
		return &v.From, &v.To
	}
	return nil, nil
}
