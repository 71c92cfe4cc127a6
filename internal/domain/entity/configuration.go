package entity

// AdjustmentDirection sentido de un ajuste de inventario. El sentido se
// traduce a un tipo de transacción vía configuración, nunca hard-coded.
type AdjustmentDirection string

const (
	AdjustmentPositive AdjustmentDirection = "POSITIVE" // corrección de stock hacia arriba
	AdjustmentNegative AdjustmentDirection = "NEGATIVE" // corrección de stock hacia abajo
)

// Valid indica si el sentido es uno de los dos conocidos.
func (d AdjustmentDirection) Valid() bool {
	return d == AdjustmentPositive || d == AdjustmentNegative
}

// SystemConfiguration mapea roles lógicos de documento a tipos de transacción.
// La fila guarda también mapeos de otras familias (facturas, notas de crédito)
// que este núcleo no usa. Un valor nil significa "rol sin configurar".
type SystemConfiguration struct {
	ID                       int64
	Active                   bool
	AdjustmentPositiveTypeID *int64
	AdjustmentNegativeTypeID *int64
}

// AdjustmentTypeID devuelve el tipo de transacción configurado para el
// sentido pedido, o nil si no está configurado.
func (c *SystemConfiguration) AdjustmentTypeID(d AdjustmentDirection) *int64 {
	switch d {
	case AdjustmentPositive:
		return c.AdjustmentPositiveTypeID
	case AdjustmentNegative:
		return c.AdjustmentNegativeTypeID
	}
	return nil
}
