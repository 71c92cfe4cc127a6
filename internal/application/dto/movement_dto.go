package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
)

// AdjustmentLineRequest renglón de entrada de un ajuste. importe_ml/me
// ausentes se calculan como cantidad × costo (el ME solo si vino costo_me).
type AdjustmentLineRequest struct {
	ItemID          int64            `json:"articulo_id" validate:"required,gt=0"`
	LineNumber      int              `json:"nro_linea" validate:"required,gt=0"`
	Quantity        decimal.Decimal  `json:"cantidad" validate:"required"`
	UnitCostLocal   decimal.Decimal  `json:"costo_ml"`
	UnitCostForeign *decimal.Decimal `json:"costo_me,omitempty"`
	AmountLocal     *decimal.Decimal `json:"importe_ml,omitempty"`
	AmountForeign   *decimal.Decimal `json:"importe_me,omitempty"`
}

// CreateAdjustmentRequest cuerpo de POST /api/ajustes. La dirección decide
// qué tipo de transacción (configurado, no hard-coded) recibe el documento.
type CreateAdjustmentRequest struct {
	BranchID     int64                   `json:"sucursal_id" validate:"required,gt=0"`
	WarehouseID  int64                   `json:"deposito_id" validate:"required,gt=0"`
	CurrencyID   int64                   `json:"moneda_id" validate:"required,gt=0"`
	MotiveID     *int64                  `json:"motivo_ajuste_id,omitempty" validate:"omitempty,gt=0"`
	Direction    string                  `json:"direccion" validate:"required,oneof=POSITIVE NEGATIVE"`
	DocumentDate string                  `json:"fecha_documento" validate:"required,datetime=2006-01-02"`
	ExchangeRate *decimal.Decimal        `json:"tasa_cambio,omitempty"`
	Note         *string                 `json:"observacion,omitempty"`
	Lines        []AdjustmentLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// UpdateMovementHeaderRequest cuerpo de PATCH /api/movimientos/:id.
// Solo cabecera: renglones, totales, número y tipo son inmutables.
type UpdateMovementHeaderRequest struct {
	DocumentDate   *string          `json:"fecha_documento,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExchangeRate   *decimal.Decimal `json:"tasa_cambio,omitempty"`
	Note           *string          `json:"observacion,omitempty"`
	ClientID       *int64           `json:"cliente_id,omitempty" validate:"omitempty,gt=0"`
	SupplierID     *int64           `json:"proveedor_id,omitempty" validate:"omitempty,gt=0"`
	MotiveID       *int64           `json:"motivo_ajuste_id,omitempty" validate:"omitempty,gt=0"`
	TimbradoNumber *string          `json:"nro_timbrado,omitempty"`
}

// ListMovementsRequest query params de GET /api/movimientos.
type ListMovementsRequest struct {
	PageRequest
	TransactionTypeID *int64 `query:"tipo_transaccion_id"`
	BranchID          *int64 `query:"sucursal_id"`
	WarehouseID       *int64 `query:"deposito_id"`
	CurrencyID        *int64 `query:"moneda_id"`
	ClientID          *int64 `query:"cliente_id"`
	SupplierID        *int64 `query:"proveedor_id"`
	DateFrom          string `query:"fecha_desde" validate:"omitempty,datetime=2006-01-02"`
	DateTo            string `query:"fecha_hasta" validate:"omitempty,datetime=2006-01-02"`
	IncludeLines      bool   `query:"con_detalles"`
}

// MovementLineResponse renglón en respuestas.
type MovementLineResponse struct {
	ID                 int64            `json:"id"`
	ItemID             int64            `json:"articulo_id"`
	ItemCode           string           `json:"articulo_codigo"`
	ItemName           string           `json:"articulo_nombre"`
	LineNumber         int              `json:"nro_linea"`
	Quantity           decimal.Decimal  `json:"cantidad"`
	UnitCostLocal      decimal.Decimal  `json:"costo_ml"`
	UnitCostForeign    *decimal.Decimal `json:"costo_me,omitempty"`
	TaxPercentage      decimal.Decimal  `json:"porcentaje_impuesto"`
	DiscountPercentage decimal.Decimal  `json:"porcentaje_descuento"`
	AmountLocal        decimal.Decimal  `json:"importe_ml"`
	AmountForeign      *decimal.Decimal `json:"importe_me,omitempty"`
}

// MovementResponse documento hidratado en respuestas.
type MovementResponse struct {
	ID                  int64                  `json:"id"`
	TransactionTypeID   int64                  `json:"tipo_transaccion_id"`
	TransactionTypeName string                 `json:"tipo_transaccion"`
	BranchID            int64                  `json:"sucursal_id"`
	BranchName          string                 `json:"sucursal"`
	WarehouseID         int64                  `json:"deposito_id"`
	WarehouseName       string                 `json:"deposito"`
	UserID              int64                  `json:"usuario_id"`
	UserAlias           string                 `json:"usuario"`
	CurrencyID          int64                  `json:"moneda_id"`
	CurrencyName        string                 `json:"moneda"`
	ClientID            *int64                 `json:"cliente_id,omitempty"`
	ClientName          *string                `json:"cliente,omitempty"`
	SupplierID          *int64                 `json:"proveedor_id,omitempty"`
	SupplierName        *string                `json:"proveedor,omitempty"`
	MotiveID            *int64                 `json:"motivo_ajuste_id,omitempty"`
	MotiveName          *string                `json:"motivo_ajuste,omitempty"`
	DocumentNumber      int64                  `json:"nro_documento"`
	TimbradoNumber      *string                `json:"nro_timbrado,omitempty"`
	DocumentDate        time.Time              `json:"fecha_documento"`
	RecordedAt          time.Time              `json:"fecha_registro"`
	ExchangeRate        decimal.Decimal        `json:"tasa_cambio"`
	TotalLocal          decimal.Decimal        `json:"total_ml"`
	TotalForeign        *decimal.Decimal       `json:"total_me,omitempty"`
	Note                *string                `json:"observacion,omitempty"`
	Lines               []MovementLineResponse `json:"detalles,omitempty"`
}

// MovementResponseFrom convierte la entidad hidratada a respuesta HTTP.
func MovementResponseFrom(m *entity.MovementDocument) MovementResponse {
	resp := MovementResponse{
		ID:                  m.ID,
		TransactionTypeID:   m.TransactionTypeID,
		TransactionTypeName: m.TransactionTypeName,
		BranchID:            m.BranchID,
		BranchName:          m.BranchName,
		WarehouseID:         m.WarehouseID,
		WarehouseName:       m.WarehouseName,
		UserID:              m.UserID,
		UserAlias:           m.UserAlias,
		CurrencyID:          m.CurrencyID,
		CurrencyName:        m.CurrencyName,
		ClientID:            m.ClientID,
		ClientName:          m.ClientName,
		SupplierID:          m.SupplierID,
		SupplierName:        m.SupplierName,
		MotiveID:            m.AdjustmentMotiveID,
		MotiveName:          m.MotiveName,
		DocumentNumber:      m.DocumentNumber,
		TimbradoNumber:      m.TimbradoNumber,
		DocumentDate:        m.DocumentDate,
		RecordedAt:          m.RecordedAt,
		ExchangeRate:        m.ExchangeRate,
		TotalLocal:          m.TotalLocal,
		TotalForeign:        m.TotalForeign,
		Note:                m.Note,
	}
	for _, l := range m.Lines {
		resp.Lines = append(resp.Lines, MovementLineResponse{
			ID:                 l.ID,
			ItemID:             l.ItemID,
			ItemCode:           l.ItemCode,
			ItemName:           l.ItemName,
			LineNumber:         l.LineNumber,
			Quantity:           l.Quantity,
			UnitCostLocal:      l.UnitCostLocal,
			UnitCostForeign:    l.UnitCostForeign,
			TaxPercentage:      l.TaxPercentage,
			DiscountPercentage: l.DiscountPercentage,
			AmountLocal:        l.AmountLocal,
			AmountForeign:      l.AmountForeign,
		})
	}
	return resp
}
