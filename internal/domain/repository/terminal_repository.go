package repository

import (
	"context"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
)

// TerminalRepository puerto de terminales y su numeración de ajustes.
type TerminalRepository interface {
	// GetAssignedTerminal devuelve la terminal asignada al usuario, o nil si
	// el usuario no tiene asignación (no puede emitir documentos numerados).
	GetAssignedTerminal(ctx context.Context, userID int64) (*entity.Terminal, error)
	// NextAdjustmentNumber reserva y devuelve el próximo número de ajuste de
	// la terminal. Debe ser un incremento atómico en el storage (un solo
	// UPDATE ... RETURNING), nunca un read seguido de un write independiente:
	// dos reservas concurrentes sobre la misma terminal jamás pueden observar
	// el mismo número ni perder un incremento.
	NextAdjustmentNumber(ctx context.Context, terminalID int64) (int64, error)
	// PeekAdjustmentNumber devuelve el número que reservaría la próxima
	// llamada, sin mutar el contador (preview de UI).
	PeekAdjustmentNumber(ctx context.Context, terminalID int64) (int64, error)
}
