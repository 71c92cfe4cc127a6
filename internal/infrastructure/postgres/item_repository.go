package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo lectura del catálogo de artículos (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByID devuelve el artículo con el divisor de su impuesto resuelto
// (LEFT JOIN: un artículo exento no tiene regla), o nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	query := `
		SELECT a.id, a.codigo, a.descripcion, a.impuesto_id, i.divisor_calculo
		FROM articulo a
		LEFT JOIN impuesto i ON i.id = a.impuesto_id
		WHERE a.id = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Code, &it.Name, &it.TaxRuleID, &it.TaxDivisor,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get artículo: %w", err)
	}
	return &it, nil
}
