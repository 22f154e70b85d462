package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tipos de ubicación.
const (
	LocationTypeStorage = "STORAGE"
	LocationTypeFloor   = "FLOOR"
)

var labelPattern = regexp.MustCompile(`^([A-Za-z]{1,2})-(\d{2})-(\d{2})$`)

var upper = cases.Upper(language.Und)

// Location representa una ubicación física identificada por una etiqueta escaneable
// pasillo-bahía-altura (ej. A-01-02).
type Location struct {
	ID        string
	Label     string // única
	Aisle     string
	Bay       int
	Height    int
	Type      string
	CreatedAt time.Time
}

// LocationLabel etiqueta ya validada y descompuesta.
type LocationLabel struct {
	Aisle  string
	Bay    int
	Height int
}

// String devuelve la forma canónica (pasillo en mayúsculas).
func (l LocationLabel) String() string {
	return fmt.Sprintf("%s-%02d-%02d", l.Aisle, l.Bay, l.Height)
}

// ParseLocationLabel valida el formato {1-2 letras}-{2 dígitos}-{2 dígitos} y lo descompone.
func ParseLocationLabel(raw string) (LocationLabel, error) {
	m := labelPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return LocationLabel{}, fmt.Errorf("etiqueta de ubicación inválida %q: formato esperado AA-00-00", raw)
	}
	bay, _ := strconv.Atoi(m[2])
	height, _ := strconv.Atoi(m[3])
	return LocationLabel{Aisle: upper.String(m[1]), Bay: bay, Height: height}, nil
}

// NewLocation construye una ubicación nueva a partir de su etiqueta.
func NewLocation(id string, label LocationLabel, now time.Time) *Location {
	return &Location{
		ID:        id,
		Label:     label.String(),
		Aisle:     label.Aisle,
		Bay:       label.Bay,
		Height:    label.Height,
		Type:      LocationTypeStorage,
		CreatedAt: now,
	}
}
