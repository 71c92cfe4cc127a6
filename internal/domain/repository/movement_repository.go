package repository

import (
	"context"
	"time"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos. Campo nil = sin filtro.
type MovementFilter struct {
	TransactionTypeID *int64
	BranchID          *int64
	WarehouseID       *int64
	CurrencyID        *int64
	ClientID          *int64
	SupplierID        *int64
	DateFrom          *time.Time
	DateTo            *time.Time
	IncludeLines      bool
	Limit             int
	Offset            int
}

// MovementRepository puerto de persistencia para documentos de movimiento.
// CreateHeader y CreateLine se invocan con repos atados a una transacción
// (vía TxRunner); las lecturas y el delete operan sobre el pool.
type MovementRepository interface {
	// CreateHeader inserta la cabecera y asigna ID y RecordedAt sobre m.
	CreateHeader(ctx context.Context, m *entity.MovementDocument) error
	// CreateLine inserta un renglón ya estampado con MovementID.
	CreateLine(ctx context.Context, l *entity.MovementLine) error
	// GetByID devuelve el documento hidratado (cabecera + renglones ordenados
	// por nro de línea + campos de despliegue), o nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.MovementDocument, error)
	List(ctx context.Context, f MovementFilter) ([]*entity.MovementDocument, error)
	// UpdateHeader aplica el patch restringido de cabecera. No toca renglones.
	UpdateHeader(ctx context.Context, id int64, patch entity.MovementHeaderPatch) error
	// Delete elimina la cabecera; los renglones caen en cascada (FK).
	Delete(ctx context.Context, id int64) error
}
