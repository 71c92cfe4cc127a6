package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/repository"
)

var _ repository.ConfigurationRepository = (*ConfigurationRepo)(nil)

// ConfigurationRepo implementación sobre PostgreSQL. Solo lectura: la
// administración de configuraciones vive fuera de este núcleo.
type ConfigurationRepo struct {
	q Querier
}

// NewConfigurationRepository construye el adaptador.
func NewConfigurationRepository(q Querier) *ConfigurationRepo {
	return &ConfigurationRepo{q: q}
}

const selectConfig = `
	SELECT cs.id, cs.activo, cs.tipo_ajuste_positivo_id, cs.tipo_ajuste_negativo_id
	FROM configuracion_sistema cs`

func (r *ConfigurationRepo) scanConfig(row pgx.Row) (*entity.SystemConfiguration, error) {
	var c entity.SystemConfiguration
	err := row.Scan(&c.ID, &c.Active, &c.AdjustmentPositiveTypeID, &c.AdjustmentNegativeTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetForUser devuelve la configuración del override del usuario, o nil.
func (r *ConfigurationRepo) GetForUser(ctx context.Context, userID int64) (*entity.SystemConfiguration, error) {
	query := selectConfig + `
		JOIN usuario_configuracion uc ON uc.configuracion_id = cs.id
		WHERE uc.usuario_id = $1`
	cfg, err := r.scanConfig(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("get configuración de usuario: %w", err)
	}
	return cfg, nil
}

// GetActive devuelve la configuración global activa, o nil si no hay.
func (r *ConfigurationRepo) GetActive(ctx context.Context) (*entity.SystemConfiguration, error) {
	query := selectConfig + ` WHERE cs.activo = true ORDER BY cs.id LIMIT 1`
	cfg, err := r.scanConfig(r.q.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("get configuración activa: %w", err)
	}
	return cfg, nil
}
