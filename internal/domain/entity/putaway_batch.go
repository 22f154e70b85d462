package entity

import "time"

// Estados de un lote de ubicación (putaway).
type BatchStatus string

const (
	BatchStatusCompleted BatchStatus = "COMPLETED"
	BatchStatusEdited    BatchStatus = "EDITED"
	BatchStatusUndone    BatchStatus = "UNDONE"
)

// PutawayBatch agrupa las transacciones ADD creadas por una sesión de ubicación
// en una unidad editable y reversible.
type PutawayBatch struct {
	ID               string
	TargetLocationID string
	Status           BatchStatus
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
