package entity

import "time"

// Item representa un SKU del catálogo. Los datos maestros los provee un colaborador externo;
// el motor solo los resuelve por ID o por código de barras.
type Item struct {
	ID        string
	CompanyID string
	SKU       string // único
	Name      string
	Barcode   string // único
	CreatedAt time.Time
	UpdatedAt time.Time
}
