package adjustment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/repository"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/tax"
)

// MovementWriter interfaz hacia el escritor de movimientos (caso de uso de
// movimiento). El rollback del escritor se hereda sin cambios: si Create
// falla, no queda cabecera ni renglón persistido.
type MovementWriter interface {
	Create(ctx context.Context, doc *entity.MovementDocument, lines []entity.MovementLine) (*entity.MovementDocument, error)
}

// UseCase orquesta la creación de un ajuste de inventario de punta a punta:
// resolver configuración → reservar número → valorizar renglones → persistir.
// Los pasos son estrictamente secuenciales y ninguno se reintenta solo; cada
// falla vuelve al caller con detalle para corregir y reenviar como pedido
// nuevo (el reenvío reserva un número fresco, no hay resume-in-place).
type UseCase struct {
	writer    MovementWriter
	resolver  *ConfigResolver
	terminals repository.TerminalRepository
	items     repository.ItemRepository
}

// NewUseCase construye el orquestador.
func NewUseCase(
	writer MovementWriter,
	resolver *ConfigResolver,
	terminals repository.TerminalRepository,
	items repository.ItemRepository,
) *UseCase {
	return &UseCase{writer: writer, resolver: resolver, terminals: terminals, items: items}
}

// LineInput renglón de entrada de un ajuste. Importe nil = se calcula
// cantidad × costo (el importe en ME solo si se dio un costo en ME).
type LineInput struct {
	ItemID          int64
	LineNumber      int
	Quantity        decimal.Decimal
	UnitCostLocal   decimal.Decimal
	UnitCostForeign *decimal.Decimal
	AmountLocal     *decimal.Decimal
	AmountForeign   *decimal.Decimal
}

// Input datos de entrada de createAdjustment. La validación estructural ya
// ocurrió en el borde HTTP; acá solo se validan las reglas del motor.
type Input struct {
	UserID       int64
	BranchID     int64
	WarehouseID  int64
	CurrencyID   int64
	MotiveID     *int64
	Direction    entity.AdjustmentDirection
	DocumentDate time.Time
	ExchangeRate *decimal.Decimal
	Note         *string
	Lines        []LineInput
}

// Create ejecuta el caso de uso completo de ajuste. Si la persistencia final
// falla, el número reservado no vuelve al pool: el hueco en la secuencia es
// un comportamiento aceptado y documentado, no un bug.
func (uc *UseCase) Create(ctx context.Context, in Input) (*entity.MovementDocument, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("ajuste sin renglones: %w", domain.ErrInvalidInput)
	}
	if !in.Direction.Valid() {
		return nil, fmt.Errorf("sentido de ajuste %q: %w", in.Direction, domain.ErrInvalidInput)
	}

	// Resolver el tipo de transacción según el sentido, antes de tocar el
	// contador: una configuración faltante no debe consumir números.
	typeID, err := uc.resolver.Resolve(ctx, in.UserID, in.Direction)
	if err != nil {
		return nil, err
	}

	// Reservar número sobre la terminal del usuario.
	terminal, err := uc.terminals.GetAssignedTerminal(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if terminal == nil {
		return nil, fmt.Errorf("usuario %d: %w", in.UserID, domain.ErrNoTerminalAssigned)
	}
	if terminal.ItemLimit > 0 && len(in.Lines) > terminal.ItemLimit {
		return nil, fmt.Errorf("terminal %s admite %d renglones: %w",
			terminal.Name, terminal.ItemLimit, domain.ErrItemLimitExceeded)
	}
	number, err := uc.terminals.NextAdjustmentNumber(ctx, terminal.ID)
	if err != nil {
		return nil, err
	}

	lines, totalLocal, totalForeign, err := uc.priceLines(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	exchangeRate := decimal.NewFromInt(1)
	if in.ExchangeRate != nil && !in.ExchangeRate.IsZero() {
		exchangeRate = *in.ExchangeRate
	}
	doc := &entity.MovementDocument{
		TransactionTypeID:  typeID,
		BranchID:           in.BranchID,
		WarehouseID:        in.WarehouseID,
		UserID:             in.UserID,
		CurrencyID:         in.CurrencyID,
		AdjustmentMotiveID: in.MotiveID,
		DocumentNumber:     number,
		DocumentDate:       in.DocumentDate,
		ExchangeRate:       exchangeRate,
		TotalLocal:         totalLocal,
		TotalForeign:       totalForeign,
		Note:               in.Note,
	}
	return uc.writer.Create(ctx, doc, lines)
}

// priceLines valoriza los renglones: importe ML faltante = cantidad × costo
// ML; importe ME solo si se dio costo ME (asimetría heredada del esquema
// local-primero). El porcentaje de impuesto se deriva del divisor del
// artículo y es solo de despliegue. Los descuentos de un ajuste son siempre 0.
func (uc *UseCase) priceLines(ctx context.Context, inputs []LineInput) ([]entity.MovementLine, decimal.Decimal, *decimal.Decimal, error) {
	lines := make([]entity.MovementLine, 0, len(inputs))
	totalLocal := decimal.Zero
	var totalForeign *decimal.Decimal

	for _, in := range inputs {
		item, err := uc.items.GetByID(ctx, in.ItemID)
		if err != nil {
			return nil, decimal.Zero, nil, err
		}
		if item == nil {
			return nil, decimal.Zero, nil, fmt.Errorf("artículo %d: %w", in.ItemID, domain.ErrItemNotFound)
		}

		amountLocal := in.Quantity.Mul(in.UnitCostLocal)
		if in.AmountLocal != nil {
			amountLocal = *in.AmountLocal
		}
		var amountForeign *decimal.Decimal
		if in.AmountForeign != nil {
			amountForeign = in.AmountForeign
		} else if in.UnitCostForeign != nil {
			af := in.Quantity.Mul(*in.UnitCostForeign)
			amountForeign = &af
		}

		_, taxPct := tax.ComputeLineTax(amountLocal, item.TaxDivisor)

		lines = append(lines, entity.MovementLine{
			ItemID:          in.ItemID,
			LineNumber:      in.LineNumber,
			Quantity:        in.Quantity,
			UnitCostLocal:   in.UnitCostLocal,
			UnitCostForeign: in.UnitCostForeign,
			TaxPercentage:   taxPct,
			AmountLocal:     amountLocal,
			AmountForeign:   amountForeign,
		})

		totalLocal = totalLocal.Add(amountLocal)
		if amountForeign != nil {
			sum := *amountForeign
			if totalForeign != nil {
				sum = totalForeign.Add(*amountForeign)
			}
			totalForeign = &sum
		}
	}
	return lines, totalLocal, totalForeign, nil
}

// PeekNextNumber devuelve el número que recibiría el próximo ajuste del
// usuario, sin mutar el contador. Dos peeks seguidos sin un ajuste en el
// medio devuelven el mismo valor.
func (uc *UseCase) PeekNextNumber(ctx context.Context, userID int64) (int64, error) {
	terminal, err := uc.terminals.GetAssignedTerminal(ctx, userID)
	if err != nil {
		return 0, err
	}
	if terminal == nil {
		return 0, fmt.Errorf("usuario %d: %w", userID, domain.ErrNoTerminalAssigned)
	}
	return uc.terminals.PeekAdjustmentNumber(ctx, terminal.ID)
}

// Readiness diagnóstico previo usado por las UIs antes de intentar un ajuste.
type Readiness struct {
	HasConfig          bool `json:"tiene_configuracion"`
	HasTerminal        bool `json:"tiene_terminal"`
	PositiveConfigured bool `json:"ajuste_positivo_configurado"`
	NegativeConfigured bool `json:"ajuste_negativo_configurado"`
}

// CheckReadiness sondea la cadena de resolución y la asignación de terminal
// sin efectos secundarios.
func (uc *UseCase) CheckReadiness(ctx context.Context, userID int64) (Readiness, error) {
	var r Readiness

	terminal, err := uc.terminals.GetAssignedTerminal(ctx, userID)
	if err != nil {
		return r, err
	}
	r.HasTerminal = terminal != nil

	if _, err := uc.resolver.Resolve(ctx, userID, entity.AdjustmentPositive); err == nil {
		r.PositiveConfigured = true
	} else if !errors.Is(err, domain.ErrMissingConfiguration) {
		return r, err
	}
	if _, err := uc.resolver.Resolve(ctx, userID, entity.AdjustmentNegative); err == nil {
		r.NegativeConfigured = true
	} else if !errors.Is(err, domain.ErrMissingConfiguration) {
		return r, err
	}

	// HasConfig reporta presencia de la fila, no de los sentidos: una
	// configuración que no mapea ningún ajuste sigue existiendo y el
	// diagnóstico debe distinguirla de la ausencia total.
	r.HasConfig, err = uc.resolver.HasSource(ctx, userID)
	if err != nil {
		return r, err
	}
	return r, nil
}
