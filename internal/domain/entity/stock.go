package entity

import "time"

// StockRecord es la celda del libro: cantidad de un item en una ubicación.
// La clave (ItemID, LocationID) es única; la fila nunca se borra aunque llegue a 0.
type StockRecord struct {
	ID         string
	ItemID     string
	LocationID string
	Quantity   int
	UpdatedAt  time.Time
}

// Available indica si la celda debe aparecer en las vistas de stock disponible.
func (s *StockRecord) Available() bool { return s.Quantity > 0 }

// StockView celda enriquecida con datos del item y la ubicación (vistas de consulta).
type StockView struct {
	StockRecord
	SKU           string
	ItemName      string
	LocationLabel string
}
