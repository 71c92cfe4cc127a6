package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// selectHeader columnas de cabecera + campos de despliegue. Los joins a
// cliente/proveedor/motivo son LEFT porque un ajuste no tiene contraparte.
const selectHeader = `
	SELECT m.id, m.tipo_transaccion_id, tt.descripcion,
	       m.sucursal_id, s.nombre, m.deposito_id, d.nombre,
	       m.usuario_id, u.alias, m.moneda_id, mo.descripcion,
	       m.cliente_id, c.razon_social, m.proveedor_id, p.razon_social,
	       m.motivo_ajuste_id, ma.descripcion, m.movimiento_padre_id,
	       m.nro_documento, m.nro_timbrado, m.fecha_documento, m.fecha_registro,
	       m.tasa_cambio, m.total_ml, m.total_me, m.observacion
	FROM movimiento m
	JOIN tipo_transaccion tt ON tt.id = m.tipo_transaccion_id
	JOIN sucursal s ON s.id = m.sucursal_id
	JOIN deposito d ON d.id = m.deposito_id
	JOIN usuario u ON u.id = m.usuario_id
	JOIN moneda mo ON mo.id = m.moneda_id
	LEFT JOIN cliente c ON c.id = m.cliente_id
	LEFT JOIN proveedor p ON p.id = m.proveedor_id
	LEFT JOIN motivo_ajuste ma ON ma.id = m.motivo_ajuste_id`

func scanHeader(row pgx.Row) (*entity.MovementDocument, error) {
	var m entity.MovementDocument
	err := row.Scan(
		&m.ID, &m.TransactionTypeID, &m.TransactionTypeName,
		&m.BranchID, &m.BranchName, &m.WarehouseID, &m.WarehouseName,
		&m.UserID, &m.UserAlias, &m.CurrencyID, &m.CurrencyName,
		&m.ClientID, &m.ClientName, &m.SupplierID, &m.SupplierName,
		&m.AdjustmentMotiveID, &m.MotiveName, &m.ParentMovementID,
		&m.DocumentNumber, &m.TimbradoNumber, &m.DocumentDate, &m.RecordedAt,
		&m.ExchangeRate, &m.TotalLocal, &m.TotalForeign, &m.Note,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateHeader inserta la cabecera. El servidor asigna id y fecha_registro;
// ambos se devuelven sobre m.
func (r *MovementRepo) CreateHeader(ctx context.Context, m *entity.MovementDocument) error {
	query := `
		INSERT INTO movimiento (
			tipo_transaccion_id, sucursal_id, deposito_id, usuario_id, moneda_id,
			cliente_id, proveedor_id, motivo_ajuste_id, movimiento_padre_id,
			nro_documento, nro_timbrado, fecha_documento, tasa_cambio,
			total_ml, total_me, observacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, fecha_registro`
	err := r.q.QueryRow(ctx, query,
		m.TransactionTypeID, m.BranchID, m.WarehouseID, m.UserID, m.CurrencyID,
		m.ClientID, m.SupplierID, m.AdjustmentMotiveID, m.ParentMovementID,
		m.DocumentNumber, m.TimbradoNumber, m.DocumentDate, m.ExchangeRate,
		m.TotalLocal, m.TotalForeign, m.Note,
	).Scan(&m.ID, &m.RecordedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("nro de documento %d ya emitido: %w", m.DocumentNumber, err)
		}
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// CreateLine inserta un renglón del documento.
func (r *MovementRepo) CreateLine(ctx context.Context, l *entity.MovementLine) error {
	query := `
		INSERT INTO movimiento_detalle (
			movimiento_id, articulo_id, nro_linea, cantidad,
			costo_unitario_ml, costo_unitario_me, precio_unitario_ml, precio_unitario_me,
			porcentaje_impuesto, porcentaje_descuento, descuento_ml, descuento_me,
			importe_ml, importe_me)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		l.MovementID, l.ItemID, l.LineNumber, l.Quantity,
		l.UnitCostLocal, l.UnitCostForeign, l.UnitPriceLocal, l.UnitPriceForeign,
		l.TaxPercentage, l.DiscountPercentage, l.DiscountLocal, l.DiscountForeign,
		l.AmountLocal, l.AmountForeign,
	).Scan(&l.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("artículo %d: %w", l.ItemID, domain.ErrItemNotFound)
		}
		return fmt.Errorf("create detalle: %w", err)
	}
	return nil
}

// GetByID devuelve el documento hidratado o nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.MovementDocument, error) {
	m, err := scanHeader(r.q.QueryRow(ctx, selectHeader+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	lines, err := r.linesFor(ctx, []int64{m.ID})
	if err != nil {
		return nil, err
	}
	m.Lines = lines[m.ID]
	return m, nil
}

// List devuelve los documentos que cumplen el filtro, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementDocument, error) {
	query := selectHeader + ` WHERE 1=1`
	args := []any{}
	pos := 1
	addEq := func(col string, v *int64) {
		if v != nil {
			query += fmt.Sprintf(" AND %s = $%d", col, pos)
			args = append(args, *v)
			pos++
		}
	}
	addEq("m.tipo_transaccion_id", f.TransactionTypeID)
	addEq("m.sucursal_id", f.BranchID)
	addEq("m.deposito_id", f.WarehouseID)
	addEq("m.moneda_id", f.CurrencyID)
	addEq("m.cliente_id", f.ClientID)
	addEq("m.proveedor_id", f.SupplierID)
	if f.DateFrom != nil {
		query += fmt.Sprintf(" AND m.fecha_documento >= $%d", pos)
		args = append(args, *f.DateFrom)
		pos++
	}
	if f.DateTo != nil {
		query += fmt.Sprintf(" AND m.fecha_documento <= $%d", pos)
		args = append(args, *f.DateTo)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.fecha_registro DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementDocument
	for rows.Next() {
		m, err := scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if f.IncludeLines && len(list) > 0 {
		ids := make([]int64, len(list))
		for i, m := range list {
			ids[i] = m.ID
		}
		byDoc, err := r.linesFor(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, m := range list {
			m.Lines = byDoc[m.ID]
		}
	}
	return list, nil
}

// linesFor trae los renglones de los documentos indicados, con código y
// nombre de artículo, ordenados por nro de línea ascendente.
func (r *MovementRepo) linesFor(ctx context.Context, movementIDs []int64) (map[int64][]entity.MovementLine, error) {
	query := `
		SELECT dt.id, dt.movimiento_id, dt.articulo_id, a.codigo, a.descripcion,
		       dt.nro_linea, dt.cantidad,
		       dt.costo_unitario_ml, dt.costo_unitario_me,
		       dt.precio_unitario_ml, dt.precio_unitario_me,
		       dt.porcentaje_impuesto, dt.porcentaje_descuento,
		       dt.descuento_ml, dt.descuento_me, dt.importe_ml, dt.importe_me
		FROM movimiento_detalle dt
		JOIN articulo a ON a.id = dt.articulo_id
		WHERE dt.movimiento_id = ANY($1)
		ORDER BY dt.movimiento_id, dt.nro_linea ASC`
	rows, err := r.q.Query(ctx, query, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("list detalles: %w", err)
	}
	defer rows.Close()

	byDoc := make(map[int64][]entity.MovementLine, len(movementIDs))
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(
			&l.ID, &l.MovementID, &l.ItemID, &l.ItemCode, &l.ItemName,
			&l.LineNumber, &l.Quantity,
			&l.UnitCostLocal, &l.UnitCostForeign,
			&l.UnitPriceLocal, &l.UnitPriceForeign,
			&l.TaxPercentage, &l.DiscountPercentage,
			&l.DiscountLocal, &l.DiscountForeign, &l.AmountLocal, &l.AmountForeign,
		); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		byDoc[l.MovementID] = append(byDoc[l.MovementID], l)
	}
	return byDoc, rows.Err()
}

// UpdateHeader aplica el patch restringido. Solo campos descriptivos de
// cabecera; un patch vacío no toca la fila.
func (r *MovementRepo) UpdateHeader(ctx context.Context, id int64, patch entity.MovementHeaderPatch) error {
	sets := []string{}
	args := []any{}
	pos := 1
	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, pos))
		args = append(args, v)
		pos++
	}
	if patch.DocumentDate != nil {
		add("fecha_documento", *patch.DocumentDate)
	}
	if patch.ExchangeRate != nil {
		add("tasa_cambio", *patch.ExchangeRate)
	}
	if patch.Note != nil {
		add("observacion", *patch.Note)
	}
	if patch.ClientID != nil {
		add("cliente_id", *patch.ClientID)
	}
	if patch.SupplierID != nil {
		add("proveedor_id", *patch.SupplierID)
	}
	if patch.AdjustmentMotiveID != nil {
		add("motivo_ajuste_id", *patch.AdjustmentMotiveID)
	}
	if patch.TimbradoNumber != nil {
		add("nro_timbrado", *patch.TimbradoNumber)
	}
	if len(sets) == 0 {
		return nil
	}
	query := "UPDATE movimiento SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += fmt.Sprintf(" WHERE id = $%d", pos)
	args = append(args, id)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update cabecera: %w", err)
	}
	return nil
}

// Delete elimina la cabecera; los renglones caen por FK ON DELETE CASCADE.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movimiento WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("movimiento %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
