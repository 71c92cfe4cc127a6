package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDocument es la cabecera de un movimiento de inventario (ajuste,
// remisión, etc.). Se crea una sola vez dentro de una transacción junto con
// sus detalles; después solo admite actualización restringida de cabecera.
// Los campos *Name/*Alias son denormalizados de solo lectura, poblados por
// el repositorio al hidratar el documento.
type MovementDocument struct {
	ID                 int64
	TransactionTypeID  int64
	BranchID           int64
	WarehouseID        int64
	UserID             int64
	CurrencyID         int64
	ClientID           *int64
	SupplierID         *int64
	AdjustmentMotiveID *int64
	ParentMovementID   *int64
	DocumentNumber     int64   // único dentro del linaje tipo-transacción/terminal
	TimbradoNumber     *string
	DocumentDate       time.Time
	RecordedAt         time.Time // asignado por el servidor al insertar
	ExchangeRate       decimal.Decimal
	TotalLocal         decimal.Decimal
	TotalForeign       *decimal.Decimal
	Note               *string

	// Campos de despliegue (joins)
	TransactionTypeName string
	BranchName          string
	WarehouseName       string
	UserAlias           string
	CurrencyName        string
	ClientName          *string
	SupplierName        *string
	MotiveName          *string

	Lines []MovementLine
}

// MovementLine es un renglón del documento. LineNumber lo asigna el caller
// (1-based, único por documento). El signo del ajuste lo determina el tipo
// de transacción de la cabecera, no la cantidad.
type MovementLine struct {
	ID                 int64
	MovementID         int64
	ItemID             int64
	LineNumber         int
	Quantity           decimal.Decimal
	UnitCostLocal      decimal.Decimal
	UnitCostForeign    *decimal.Decimal
	UnitPriceLocal     decimal.Decimal
	UnitPriceForeign   *decimal.Decimal
	TaxPercentage      decimal.Decimal // informativo, derivado del divisor del impuesto
	DiscountPercentage decimal.Decimal
	DiscountLocal      decimal.Decimal
	DiscountForeign    *decimal.Decimal
	AmountLocal        decimal.Decimal
	AmountForeign      *decimal.Decimal

	// Campos de despliegue (join articulo)
	ItemCode string
	ItemName string
}

// MovementHeaderPatch actualización restringida de cabecera: solo campos
// descriptivos. Detalles, totales, número y tipo son inmutables después de
// la creación. Campo nil = sin cambio.
type MovementHeaderPatch struct {
	DocumentDate       *time.Time
	ExchangeRate       *decimal.Decimal
	Note               *string
	ClientID           *int64
	SupplierID         *int64
	AdjustmentMotiveID *int64
	TimbradoNumber     *string
}
