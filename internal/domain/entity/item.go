package entity

import "github.com/shopspring/decimal"

// TaxRule regla de impuesto con esquema de IVA incluido: el importe del
// renglón ya contiene el impuesto y la porción se recupera dividiendo por
// el divisor (11 codifica 10%, 21 codifica ~5%).
type TaxRule struct {
	ID                 int64
	Name               string
	CalculationDivisor decimal.Decimal
}

// Item artículo del catálogo, con referencia opcional a su regla de impuesto.
// TaxDivisor viene del join con la regla cuando el artículo se carga para
// valorizar renglones; nil cuando el artículo no tiene impuesto asignado.
type Item struct {
	ID         int64
	Code       string
	Name       string
	TaxRuleID  *int64
	TaxDivisor *decimal.Decimal
}
