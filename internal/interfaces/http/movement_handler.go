package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/dto"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/movement"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/repository"
)

// MovementHandler maneja el CRUD de movimientos (lecturas, update
// restringido de cabecera, hard delete) y el reporte PDF (protegido).
type MovementHandler struct {
	uc     *movement.UseCase
	report movement.ReportGenerator
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.UseCase, report movement.ReportGenerator) *MovementHandler {
	return &MovementHandler{uc: uc, report: report}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

// parseFilter arma el filtro de listado desde los query params.
func parseFilter(c *fiber.Ctx) (repository.MovementFilter, error) {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return repository.MovementFilter{}, err
	}
	if err := validate.Struct(&in); err != nil {
		return repository.MovementFilter{}, err
	}
	in.DefaultPage()

	f := repository.MovementFilter{
		TransactionTypeID: in.TransactionTypeID,
		BranchID:          in.BranchID,
		WarehouseID:       in.WarehouseID,
		CurrencyID:        in.CurrencyID,
		ClientID:          in.ClientID,
		SupplierID:        in.SupplierID,
		IncludeLines:      in.IncludeLines,
		Limit:             in.Limit,
		Offset:            in.Offset,
	}
	if in.DateFrom != "" {
		t, err := time.Parse("2006-01-02", in.DateFrom)
		if err != nil {
			return f, err
		}
		f.DateFrom = &t
	}
	if in.DateTo != "" {
		t, err := time.Parse("2006-01-02", in.DateTo)
		if err != nil {
			return f, err
		}
		f.DateTo = &t
	}
	return f, nil
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        tipo_transaccion_id  query  int     false  "Filtrar por tipo"
// @Param        sucursal_id          query  int     false  "Filtrar por sucursal"
// @Param        deposito_id          query  int     false  "Filtrar por depósito"
// @Param        fecha_desde          query  string  false  "YYYY-MM-DD"
// @Param        fecha_hasta          query  string  false  "YYYY-MM-DD"
// @Param        con_detalles         query  bool    false  "Incluir renglones"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	docs, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.MovementResponseFrom(d))
	}
	return c.JSON(fiber.Map{"total": len(out), "movimientos": out})
}

// GetByID godoc
// @Summary      Obtener un movimiento por ID
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	doc, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MovementResponseFrom(doc))
}

// UpdateHeader godoc
// @Summary      Actualización restringida de cabecera
// @Description  Solo campos descriptivos; renglones, totales, número y tipo
//               son inmutables.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                              true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementHeaderRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [patch]
func (h *MovementHandler) UpdateHeader(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateMovementHeaderRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	patch := entity.MovementHeaderPatch{
		ExchangeRate:       in.ExchangeRate,
		Note:               in.Note,
		ClientID:           in.ClientID,
		SupplierID:         in.SupplierID,
		AdjustmentMotiveID: in.MotiveID,
		TimbradoNumber:     in.TimbradoNumber,
	}
	if in.DocumentDate != nil {
		t, err := time.Parse("2006-01-02", *in.DocumentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_documento inválida"})
		}
		patch.DocumentDate = &t
	}
	doc, err := h.uc.UpdateHeader(c.Context(), id, patch)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MovementResponseFrom(doc))
}

// Delete godoc
// @Summary      Eliminar un movimiento (hard delete, renglones en cascada)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse  "snapshot previo al borrado"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	snapshot, err := h.uc.Delete(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MovementResponseFrom(snapshot))
}

// Report godoc
// @Summary      Reporte PDF del listado de movimientos
// @Description  Aplica los mismos filtros del listado y entrega el resultado
//               al generador de reportes.
// @Tags         movimientos
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos/reporte [get]
func (h *MovementHandler) Report(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	f.IncludeLines = true
	docs, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapDomainError(c, err)
	}
	pdfBytes, err := h.report.MovementListPDF(c.Context(), docs)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="movimientos.pdf"`)
	return c.Send(pdfBytes)
}
