package entity

// Terminal punto lógico de emisión de documentos. Cada terminal lleva sus
// propios contadores monotónicos por familia de documento; este núcleo solo
// toca el contador de ajustes (los demás existen en la tabla pero son opacos
// aquí). AdjustmentCounter guarda el último número emitido, no el próximo.
type Terminal struct {
	ID                int64
	Name              string
	AdjustmentCounter int64
	ItemLimit         int // 0 = sin límite de renglones por documento
	Active            bool
}
