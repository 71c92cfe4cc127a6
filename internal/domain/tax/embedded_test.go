package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/tax"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de la convención de IVA incluido: el divisor 11 codifica 10%
// (11000 incluye 1000 de impuesto) y el 21 codifica 5%. Divisores fuera de
// la tabla siguen produciendo impuesto pero porcentaje 0.
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeLineTax_Divisor11(t *testing.T) {
	amount, pct := tax.ComputeLineTax(decimal.NewFromInt(11000), dec(11))
	assert.True(t, amount.Equal(decimal.NewFromInt(1000)), "impuesto = 11000/11")
	assert.True(t, pct.Equal(decimal.NewFromInt(10)), "divisor 11 despliega 10%%")
}

func TestComputeLineTax_Divisor21(t *testing.T) {
	amount, pct := tax.ComputeLineTax(decimal.NewFromInt(2100), dec(21))
	assert.True(t, amount.Equal(decimal.NewFromInt(100)), "impuesto = 2100/21")
	assert.True(t, pct.Equal(decimal.NewFromInt(5)), "divisor 21 despliega 5%%")
}

func TestComputeLineTax_DivisorDesconocido(t *testing.T) {
	amount, pct := tax.ComputeLineTax(decimal.NewFromInt(700), dec(7))
	assert.True(t, amount.Equal(decimal.NewFromInt(100)), "el impuesto se calcula igual")
	assert.True(t, pct.IsZero(), "porcentaje 0 para divisor fuera de la tabla")
}

func TestComputeLineTax_SinRegla(t *testing.T) {
	amount, pct := tax.ComputeLineTax(decimal.NewFromInt(5000), nil)
	assert.True(t, amount.IsZero())
	assert.True(t, pct.IsZero())
}

func TestComputeLineTax_DivisorNoPositivo(t *testing.T) {
	for _, v := range []int64{0, -11} {
		amount, pct := tax.ComputeLineTax(decimal.NewFromInt(5000), dec(v))
		assert.True(t, amount.IsZero(), "divisor %d no debe producir impuesto", v)
		assert.True(t, pct.IsZero())
	}
}
