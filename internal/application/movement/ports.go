package movement

import (
	"context"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/repository"
)

// ReportGenerator renderiza el listado de movimientos a PDF. El motor le
// entrega la salida de List sin transformar; el formato es asunto del
// generador externo.
type ReportGenerator interface {
	MovementListPDF(ctx context.Context, docs []*entity.MovementDocument) ([]byte, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cabecera y renglones se
// persistan todo-o-nada: cualquier error dentro de fn hace rollback completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
