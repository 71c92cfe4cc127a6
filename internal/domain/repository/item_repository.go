package repository

import (
	"context"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
)

// ItemRepository puerto de lectura del catálogo de artículos (solo lectura
// desde este núcleo; el CRUD vive fuera).
type ItemRepository interface {
	// GetByID devuelve el artículo con el divisor de su regla de impuesto
	// ya resuelto (join), o nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
}
