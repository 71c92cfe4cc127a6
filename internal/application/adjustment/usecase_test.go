package adjustment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/adjustment"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeTerminalRepo contador en memoria con la misma garantía que el storage
// real: incremento y lectura bajo exclusión mutua.
type fakeTerminalRepo struct {
	terminal *entity.Terminal

	mu      sync.Mutex
	counter int64
	allocs  int
}

func (f *fakeTerminalRepo) GetAssignedTerminal(_ context.Context, _ int64) (*entity.Terminal, error) {
	return f.terminal, nil
}

func (f *fakeTerminalRepo) NextAdjustmentNumber(_ context.Context, _ int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter++
	f.allocs++
	return f.counter, nil
}

func (f *fakeTerminalRepo) PeekAdjustmentNumber(_ context.Context, _ int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counter + 1, nil
}

type fakeItemRepo struct {
	items map[int64]*entity.Item
}

func (f *fakeItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	return f.items[id], nil
}

// fakeWriter implementa adjustment.MovementWriter acumulando los documentos
// persistidos; con failures > 0 las primeras llamadas fallan (simula la
// caída del storage después de reservar el número).
type fakeWriter struct {
	mu       sync.Mutex
	docs     []*entity.MovementDocument
	failures int
	nextID   int64
}

func (f *fakeWriter) Create(_ context.Context, doc *entity.MovementDocument, lines []entity.MovementLine) (*entity.MovementDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("escritura fallida")
	}
	f.nextID++
	doc.ID = f.nextID
	doc.RecordedAt = time.Now()
	doc.Lines = lines
	f.docs = append(f.docs, doc)
	return doc, nil
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// buildUseCase arma el orquestador con fakes listos para el camino feliz:
// ajuste positivo → tipo 7, negativo → tipo 8, terminal 1 sin límite,
// artículo 100 con IVA 10% (divisor 11) y artículo 200 exento.
func buildUseCase(writer *fakeWriter, terminals *fakeTerminalRepo) *adjustment.UseCase {
	resolver := adjustment.NewConfigResolver(&fakeConfigRepo{
		active: &entity.SystemConfiguration{
			ID:                       1,
			Active:                   true,
			AdjustmentPositiveTypeID: typeID(7),
			AdjustmentNegativeTypeID: typeID(8),
		},
	})
	items := &fakeItemRepo{items: map[int64]*entity.Item{
		100: {ID: 100, Code: "A-100", Name: "Tornillo", TaxRuleID: typeID(1), TaxDivisor: decPtr(11)},
		200: {ID: 200, Code: "A-200", Name: "Arandela"},
	}}
	return adjustment.NewUseCase(writer, resolver, terminals, items)
}

func baseInput(direction entity.AdjustmentDirection, lines ...adjustment.LineInput) adjustment.Input {
	return adjustment.Input{
		UserID:       10,
		BranchID:     1,
		WarehouseID:  2,
		CurrencyID:   1,
		Direction:    direction,
		DocumentDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Lines:        lines,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz y valorización
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AjustePositivoCompleto(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Name: "CAJA-01", Active: true}}
	uc := buildUseCase(writer, terminals)

	costME := decPtr(3)
	doc, err := uc.Create(context.Background(), baseInput(entity.AdjustmentPositive,
		adjustment.LineInput{ItemID: 100, LineNumber: 1, Quantity: dec(1), UnitCostLocal: dec(11000)},
		adjustment.LineInput{ItemID: 200, LineNumber: 2, Quantity: dec(4), UnitCostLocal: dec(500), UnitCostForeign: costME},
	))
	require.NoError(t, err)

	assert.Equal(t, int64(7), doc.TransactionTypeID, "positivo usa el tipo configurado")
	assert.Equal(t, int64(1), doc.DocumentNumber, "primer número de la terminal")
	assert.True(t, doc.ExchangeRate.Equal(dec(1)), "tasa por defecto 1")

	// Aditividad: total ML = suma de importes ML; total ME solo sobre los
	// renglones que trajeron importe ME.
	assert.True(t, doc.TotalLocal.Equal(dec(13000)))
	require.NotNil(t, doc.TotalForeign)
	assert.True(t, doc.TotalForeign.Equal(dec(12)), "4 × 3 solo del segundo renglón")

	require.Len(t, doc.Lines, 2)
	assert.True(t, doc.Lines[0].TaxPercentage.Equal(dec(10)), "divisor 11 despliega 10 por ciento")
	assert.True(t, doc.Lines[1].TaxPercentage.IsZero(), "artículo exento")
	assert.True(t, doc.Lines[0].DiscountPercentage.IsZero(), "un ajuste nunca lleva descuento")
	assert.True(t, doc.Lines[0].DiscountLocal.IsZero())
}

func TestCreate_AjusteNegativoUsaSuTipo(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Name: "CAJA-01", Active: true}}
	uc := buildUseCase(writer, terminals)

	doc, err := uc.Create(context.Background(), baseInput(entity.AdjustmentNegative,
		adjustment.LineInput{ItemID: 200, LineNumber: 1, Quantity: dec(2), UnitCostLocal: dec(100)},
	))
	require.NoError(t, err)
	assert.Equal(t, int64(8), doc.TransactionTypeID)
	// El signo lo lleva el tipo de transacción, no la cantidad.
	assert.True(t, doc.Lines[0].Quantity.Equal(dec(2)))
}

func TestCreate_ImporteDefecto(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Name: "CAJA-01", Active: true}}
	uc := buildUseCase(writer, terminals)

	doc, err := uc.Create(context.Background(), baseInput(entity.AdjustmentPositive,
		adjustment.LineInput{ItemID: 200, LineNumber: 1, Quantity: dec(3), UnitCostLocal: dec(100)},
	))
	require.NoError(t, err)
	assert.True(t, doc.Lines[0].AmountLocal.Equal(dec(300)), "importe ML = cantidad × costo ML")
	assert.Nil(t, doc.Lines[0].AmountForeign, "sin costo ME no se inventa importe ME")
	assert.Nil(t, doc.TotalForeign)
}

func TestCreate_ImporteCeroExplicitoSeRespeta(t *testing.T) {
	// Corrección sin costo: el 0 explícito no es un faltante, el renglón y el
	// total de cabecera quedan en 0 aunque cantidad × costo dé otra cosa.
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Name: "CAJA-01", Active: true}}
	uc := buildUseCase(writer, terminals)

	doc, err := uc.Create(context.Background(), baseInput(entity.AdjustmentPositive,
		adjustment.LineInput{ItemID: 200, LineNumber: 1, Quantity: dec(3), UnitCostLocal: dec(100), AmountLocal: decPtr(0)},
	))
	require.NoError(t, err)
	assert.True(t, doc.Lines[0].AmountLocal.IsZero())
	assert.True(t, doc.TotalLocal.IsZero(), "el total acumula el 0 explícito, no una revalorización")
}

func TestCreate_ImporteExplicitoPrevalece(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Name: "CAJA-01", Active: true}}
	uc := buildUseCase(writer, terminals)

	doc, err := uc.Create(context.Background(), baseInput(entity.AdjustmentPositive,
		adjustment.LineInput{ItemID: 200, LineNumber: 1, Quantity: dec(3), UnitCostLocal: dec(100), AmountLocal: decPtr(250)},
	))
	require.NoError(t, err)
	assert.True(t, doc.Lines[0].AmountLocal.Equal(dec(250)))
	assert.True(t, doc.TotalLocal.Equal(dec(250)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos: cada precondición corta la secuencia donde corresponde
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SinRenglones(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Active: true}}
	uc := buildUseCase(writer, terminals)

	_, err := uc.Create(context.Background(), baseInput(entity.AdjustmentPositive))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, writer.docs)
}

func TestCreate_SinConfiguracionNoConsumeNumero(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Active: true}}
	resolver := adjustment.NewConfigResolver(&fakeConfigRepo{}) // sin fuentes
	items := &fakeItemRepo{items: map[int64]*entity.Item{200: {ID: 200}}}
	uc := adjustment.NewUseCase(writer, resolver, terminals, items)

	_, err := uc.Create(context.Background(), baseInput(entity.AdjustmentNegative,
		adjustment.LineInput{ItemID: 200, LineNumber: 1, Quantity: dec(1), UnitCostLocal: dec(100)},
	))
	assert.ErrorIs(t, err, domain.ErrMissingConfiguration)
	assert.Empty(t, writer.docs)
	assert.Zero(t, terminals.allocs, "la configuración faltante se detecta antes de reservar número")
}

func TestCreate_SinTerminalAsignada(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{} // sin asignación
	uc := buildUseCase(writer, terminals)

	_, err := uc.Create(context.Background(), baseInput(entity.AdjustmentPositive,
		adjustment.LineInput{ItemID: 200, LineNumber: 1, Quantity: dec(1), UnitCostLocal: dec(100)},
	))
	assert.ErrorIs(t, err, domain.ErrNoTerminalAssigned)
	assert.Empty(t, writer.docs, "no queda cabecera después del rechazo")
}

func TestCreate_LimiteDeRenglones(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Name: "CAJA-01", ItemLimit: 1, Active: true}}
	uc := buildUseCase(writer, terminals)

	_, err := uc.Create(context.Background(), baseInput(entity.AdjustmentPositive,
		adjustment.LineInput{ItemID: 100, LineNumber: 1, Quantity: dec(1), UnitCostLocal: dec(100)},
		adjustment.LineInput{ItemID: 200, LineNumber: 2, Quantity: dec(1), UnitCostLocal: dec(100)},
	))
	assert.ErrorIs(t, err, domain.ErrItemLimitExceeded)
}

func TestCreate_ArticuloInexistente(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Active: true}}
	uc := buildUseCase(writer, terminals)

	_, err := uc.Create(context.Background(), baseInput(entity.AdjustmentPositive,
		adjustment.LineInput{ItemID: 999, LineNumber: 1, Quantity: dec(1), UnitCostLocal: dec(100)},
	))
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Empty(t, writer.docs)
}

func TestCreate_FallaDeEscrituraDejaHuecoDocumentado(t *testing.T) {
	// Si la persistencia final falla, el número reservado no vuelve al pool:
	// el reenvío obtiene un número fresco y queda un hueco en la secuencia.
	writer := &fakeWriter{failures: 1}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Active: true}}
	uc := buildUseCase(writer, terminals)

	in := baseInput(entity.AdjustmentPositive,
		adjustment.LineInput{ItemID: 200, LineNumber: 1, Quantity: dec(1), UnitCostLocal: dec(100)},
	)
	_, err := uc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Empty(t, writer.docs)

	doc, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.DocumentNumber, "el número 1 quedó consumido por el intento fallido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Peek, readiness y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestPeek_SinEfectosSecundarios(t *testing.T) {
	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Active: true}}
	uc := buildUseCase(writer, terminals)

	first, err := uc.PeekNextNumber(context.Background(), 10)
	require.NoError(t, err)
	second, err := uc.PeekNextNumber(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, first, second, "dos peeks seguidos devuelven lo mismo")
	assert.Zero(t, terminals.allocs)
}

func TestPeek_SinTerminal(t *testing.T) {
	uc := buildUseCase(&fakeWriter{}, &fakeTerminalRepo{})

	_, err := uc.PeekNextNumber(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrNoTerminalAssigned)
}

func TestCheckReadiness(t *testing.T) {
	t.Run("todo configurado", func(t *testing.T) {
		terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Active: true}}
		uc := buildUseCase(&fakeWriter{}, terminals)

		r, err := uc.CheckReadiness(context.Background(), 10)
		require.NoError(t, err)
		assert.True(t, r.HasTerminal)
		assert.True(t, r.HasConfig)
		assert.True(t, r.PositiveConfigured)
		assert.True(t, r.NegativeConfigured)
	})

	t.Run("fila presente sin sentidos mapeados", func(t *testing.T) {
		// La fila existe pero no mapea ningún ajuste: tiene_configuracion
		// debe dar true igual, para que el diagnóstico apunte a los sentidos
		// faltantes y no a una configuración ausente.
		resolver := adjustment.NewConfigResolver(&fakeConfigRepo{
			active: &entity.SystemConfiguration{ID: 1, Active: true},
		})
		terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Active: true}}
		uc := adjustment.NewUseCase(&fakeWriter{}, resolver, terminals, &fakeItemRepo{})

		r, err := uc.CheckReadiness(context.Background(), 10)
		require.NoError(t, err)
		assert.True(t, r.HasConfig)
		assert.False(t, r.PositiveConfigured)
		assert.False(t, r.NegativeConfigured)
	})

	t.Run("sin configuración alguna", func(t *testing.T) {
		resolver := adjustment.NewConfigResolver(&fakeConfigRepo{})
		uc := adjustment.NewUseCase(&fakeWriter{}, resolver, &fakeTerminalRepo{}, &fakeItemRepo{})

		r, err := uc.CheckReadiness(context.Background(), 10)
		require.NoError(t, err)
		assert.False(t, r.HasConfig)
	})

	t.Run("solo positivo configurado y sin terminal", func(t *testing.T) {
		resolver := adjustment.NewConfigResolver(&fakeConfigRepo{
			active: &entity.SystemConfiguration{ID: 1, Active: true, AdjustmentPositiveTypeID: typeID(7)},
		})
		uc := adjustment.NewUseCase(&fakeWriter{}, resolver, &fakeTerminalRepo{}, &fakeItemRepo{})

		r, err := uc.CheckReadiness(context.Background(), 10)
		require.NoError(t, err)
		assert.False(t, r.HasTerminal)
		assert.True(t, r.HasConfig)
		assert.True(t, r.PositiveConfigured)
		assert.False(t, r.NegativeConfigured)
	})
}

func TestCreate_ConcurrenteNumerosDistintos(t *testing.T) {
	// N ajustes concurrentes contra la misma terminal: N números distintos,
	// sin duplicados ni incrementos perdidos.
	const n = 25

	writer := &fakeWriter{}
	terminals := &fakeTerminalRepo{terminal: &entity.Terminal{ID: 1, Active: true}}
	uc := buildUseCase(writer, terminals)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := uc.Create(context.Background(), baseInput(entity.AdjustmentPositive,
				adjustment.LineInput{ItemID: 200, LineNumber: 1, Quantity: dec(1), UnitCostLocal: dec(100)},
			))
			return err
		})
	}
	require.NoError(t, g.Wait())

	require.Len(t, writer.docs, n)
	seen := make(map[int64]bool, n)
	for _, d := range writer.docs {
		assert.False(t, seen[d.DocumentNumber], "número duplicado: %d", d.DocumentNumber)
		seen[d.DocumentNumber] = true
	}
	assert.Equal(t, int64(n), terminals.counter, "ningún incremento perdido")
}
