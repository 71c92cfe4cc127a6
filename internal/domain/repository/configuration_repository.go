package repository

import (
	"context"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
)

// ConfigurationRepository puerto de lectura de configuración del sistema.
// No se cachea entre llamadas: cada resolución relee la configuración vigente
// para tolerar reconfiguración en caliente.
type ConfigurationRepository interface {
	// GetForUser devuelve la configuración apuntada por el override del
	// usuario, o nil si el usuario no tiene override.
	GetForUser(ctx context.Context, userID int64) (*entity.SystemConfiguration, error)
	// GetActive devuelve la configuración global activa, o nil si no hay.
	GetActive(ctx context.Context) (*entity.SystemConfiguration, error)
}
