package movement

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/repository"
)

// UseCase escribe documentos de movimiento de forma transaccional (cabecera
// + N renglones en una sola tx, con Commit/Rollback) y expone las lecturas
// y el borrado que comparten el orquestador de ajustes y sus hermanos.
type UseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
}

// NewUseCase construye el caso de uso. movRepo se usa para las operaciones
// fuera de transacción (lecturas, delete, update de cabecera).
func NewUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, movRepo: movRepo}
}

// Create persiste la cabecera y todos los renglones como unidad atómica y
// devuelve el documento hidratado. Precondiciones: lines no vacío, cada
// renglón referencia un artículo existente (ErrItemNotFound si no) y los
// renglones vienen ya valorizados por el caller — acá se persisten tal cual,
// un importe explícito en 0 es un importe en 0, no un faltante a recalcular.
// Cualquier falla dentro de la tx deja la BD sin cabecera ni renglones y el
// error se propaga sin alterar al caller.
func (uc *UseCase) Create(ctx context.Context, doc *entity.MovementDocument, lines []entity.MovementLine) (*entity.MovementDocument, error) {
	if doc == nil || len(lines) == 0 {
		return nil, fmt.Errorf("movimiento sin renglones: %w", domain.ErrInvalidInput)
	}
	if doc.ExchangeRate.IsZero() {
		doc.ExchangeRate = decimal.NewFromInt(1)
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		// Verificar referencias antes de insertar: un artículo inexistente
		// aborta toda la escritura.
		for _, l := range lines {
			item, err := itemRepo.GetByID(ctx, l.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("artículo %d: %w", l.ItemID, domain.ErrItemNotFound)
			}
		}
		if err := movRepo.CreateHeader(ctx, doc); err != nil {
			return err
		}
		for i := range lines {
			l := &lines[i]
			l.MovementID = doc.ID
			if err := movRepo.CreateLine(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Releer hidratado (renglones ordenados + campos de despliegue).
	created, err := uc.movRepo.GetByID(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("movimiento %d recién creado: %w", doc.ID, domain.ErrNotFound)
	}
	return created, nil
}

// GetByID devuelve el documento hidratado o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*entity.MovementDocument, error) {
	doc, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("movimiento %d: %w", id, domain.ErrNotFound)
	}
	return doc, nil
}

// List devuelve los documentos que cumplen el filtro, ordenados por fecha de
// registro descendente. Con IncludeLines hidrata también los renglones; la
// salida se entrega tal cual al generador externo de reportes.
func (uc *UseCase) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementDocument, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.movRepo.List(ctx, f)
}

// UpdateHeader aplica la actualización restringida de cabecera y devuelve el
// documento resultante. Los renglones no se tocan por este camino.
func (uc *UseCase) UpdateHeader(ctx context.Context, id int64, patch entity.MovementHeaderPatch) (*entity.MovementDocument, error) {
	doc, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("movimiento %d: %w", id, domain.ErrNotFound)
	}
	if err := uc.movRepo.UpdateHeader(ctx, id, patch); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete hace hard delete de la cabecera (renglones en cascada) y devuelve
// el documento tal como existía inmediatamente antes del borrado.
func (uc *UseCase) Delete(ctx context.Context, id int64) (*entity.MovementDocument, error) {
	snapshot, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, fmt.Errorf("movimiento %d: %w", id, domain.ErrNotFound)
	}
	if err := uc.movRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return snapshot, nil
}
