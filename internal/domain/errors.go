package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los
// envuelven con detalle (%w) y los handlers los traducen a códigos HTTP.
// Ninguno dispara reintentos internos: todos son corregibles por el caller
// (configuración, asignación o payload) salvo los de persistencia, que se
// propagan tal cual.
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrMissingConfiguration = errors.New("configuración del sistema faltante")
	ErrNoTerminalAssigned   = errors.New("usuario sin terminal asignada")
	ErrItemNotFound         = errors.New("artículo no encontrado")
	ErrItemLimitExceeded    = errors.New("cantidad de renglones supera el límite de la terminal")
	ErrUnauthorized         = errors.New("no autorizado")
)
