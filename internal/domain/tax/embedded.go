// Package tax implementa el cálculo de IVA incluido (servicio de dominio).
// El importe del renglón ya contiene el impuesto; la porción se recupera
// dividiendo por el divisor de la regla, nunca multiplicando por una tasa.
package tax

import "github.com/shopspring/decimal"

// divisorPercentages tabla finita divisor → porcentaje de despliegue.
// Divisores no listados producen porcentaje 0 aunque el importe del impuesto
// se calcule igual: el porcentaje es solo informativo y no debe usarse para
// recalcular nada aguas abajo.
var divisorPercentages = []struct {
	Divisor    decimal.Decimal
	Percentage decimal.Decimal
}{
	{decimal.NewFromInt(11), decimal.NewFromInt(10)}, // IVA 10%
	{decimal.NewFromInt(21), decimal.NewFromInt(5)},  // IVA 5%
}

// ComputeLineTax deriva el impuesto incluido en amountLocal según el divisor
// de la regla del artículo. divisor nil o <= 0 (artículo exento o sin regla)
// devuelve (0, 0). Ejemplo: divisor 11 sobre 11000 → impuesto 1000, 10%.
func ComputeLineTax(amountLocal decimal.Decimal, divisor *decimal.Decimal) (taxAmount, displayPercentage decimal.Decimal) {
	if divisor == nil || divisor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}
	taxAmount = amountLocal.Div(*divisor)
	for _, e := range divisorPercentages {
		if e.Divisor.Equal(*divisor) {
			return taxAmount, e.Percentage
		}
	}
	return taxAmount, decimal.Zero
}
