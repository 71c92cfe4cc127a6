package adjustment

import (
	"context"
	"fmt"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/repository"
)

// configSource una estrategia de resolución: devuelve la configuración que
// aplica (o nil) para el usuario. Las estrategias se prueban en orden y se
// corta en el primer valor no nulo para el sentido pedido.
type configSource func(ctx context.Context, userID int64) (*entity.SystemConfiguration, error)

// ConfigResolver resuelve qué tipo de transacción representa un ajuste
// positivo o negativo: primero el override del usuario, después la
// configuración global activa. Sin caché: cada llamada relee la
// configuración vigente.
type ConfigResolver struct {
	sources []configSource
}

// NewConfigResolver arma la cadena override-de-usuario → global-activa.
func NewConfigResolver(repo repository.ConfigurationRepository) *ConfigResolver {
	return &ConfigResolver{
		sources: []configSource{
			func(ctx context.Context, userID int64) (*entity.SystemConfiguration, error) {
				return repo.GetForUser(ctx, userID)
			},
			func(ctx context.Context, _ int64) (*entity.SystemConfiguration, error) {
				return repo.GetActive(ctx)
			},
		},
	}
}

// Resolve devuelve el tipo de transacción configurado para el sentido pedido.
// Si el override del usuario existe pero no trae valor para ese sentido, se
// sigue con la global; si ninguna fuente lo trae, ErrMissingConfiguration
// identificando el sentido (corregible por administración, no transitorio).
func (r *ConfigResolver) Resolve(ctx context.Context, userID int64, direction entity.AdjustmentDirection) (int64, error) {
	for _, src := range r.sources {
		cfg, err := src(ctx, userID)
		if err != nil {
			return 0, err
		}
		if cfg == nil {
			continue
		}
		if id := cfg.AdjustmentTypeID(direction); id != nil {
			return *id, nil
		}
	}
	return 0, fmt.Errorf("ajuste %s: %w", direction, domain.ErrMissingConfiguration)
}

// HasSource indica si alguna fuente de la cadena tiene una fila de
// configuración para el usuario, mapee o no los tipos de ajuste. Distingue
// "no hay configuración" de "hay una fila pero le faltan sentidos".
func (r *ConfigResolver) HasSource(ctx context.Context, userID int64) (bool, error) {
	for _, src := range r.sources {
		cfg, err := src(ctx, userID)
		if err != nil {
			return false, err
		}
		if cfg != nil {
			return true, nil
		}
	}
	return false, nil
}
