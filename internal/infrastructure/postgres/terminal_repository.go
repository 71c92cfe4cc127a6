package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/repository"
)

var _ repository.TerminalRepository = (*TerminalRepo)(nil)

// TerminalRepo implementación sobre PostgreSQL.
type TerminalRepo struct {
	q Querier
}

// NewTerminalRepository construye el adaptador.
func NewTerminalRepository(q Querier) *TerminalRepo {
	return &TerminalRepo{q: q}
}

// GetAssignedTerminal devuelve la terminal asignada al usuario o nil.
func (r *TerminalRepo) GetAssignedTerminal(ctx context.Context, userID int64) (*entity.Terminal, error) {
	query := `
		SELECT t.id, t.nombre, COALESCE(t.ultimo_nro_ajuste, 0), t.limite_items, t.activo
		FROM terminal t
		JOIN usuario_terminal ut ON ut.terminal_id = t.id
		WHERE ut.usuario_id = $1`
	var t entity.Terminal
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&t.ID, &t.Name, &t.AdjustmentCounter, &t.ItemLimit, &t.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get terminal asignada: %w", err)
	}
	return &t, nil
}

// NextAdjustmentNumber reserva el próximo número de ajuste de la terminal.
// El incremento y la lectura son UN solo statement: el lock de fila del
// UPDATE serializa a los llamadores concurrentes de la misma terminal, de
// modo que nunca dos reservas ven el mismo número ni se pierde un
// incremento (jamás un read seguido de un write separado).
func (r *TerminalRepo) NextAdjustmentNumber(ctx context.Context, terminalID int64) (int64, error) {
	query := `
		UPDATE terminal
		SET ultimo_nro_ajuste = COALESCE(ultimo_nro_ajuste, 0) + 1
		WHERE id = $1
		RETURNING ultimo_nro_ajuste`
	var number int64
	if err := r.q.QueryRow(ctx, query, terminalID).Scan(&number); err != nil {
		return 0, fmt.Errorf("reservar nro de ajuste: %w", err)
	}
	return number, nil
}

// PeekAdjustmentNumber lee el próximo número sin mutar el contador.
func (r *TerminalRepo) PeekAdjustmentNumber(ctx context.Context, terminalID int64) (int64, error) {
	query := `SELECT COALESCE(ultimo_nro_ajuste, 0) + 1 FROM terminal WHERE id = $1`
	var number int64
	if err := r.q.QueryRow(ctx, query, terminalID).Scan(&number); err != nil {
		return 0, fmt.Errorf("peek nro de ajuste: %w", err)
	}
	return number, nil
}
