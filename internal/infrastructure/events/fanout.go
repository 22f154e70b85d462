package events

import (
	"context"
	"errors"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
)

var _ inventory.EventPublisher = Fanout(nil)

// Fanout entrega los eventos a todos los publicadores; uno que falla no impide a los demás.
type Fanout []inventory.EventPublisher

// Publish devuelve la unión de los errores de cada publicador.
func (f Fanout) Publish(ctx context.Context, events []inventory.StockChangedEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
