package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/adjustment"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/dto"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
)

// AdjustmentHandler maneja las peticiones HTTP de ajustes de inventario
// (protegido: el userID sale del token).
type AdjustmentHandler struct {
	uc *adjustment.UseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *adjustment.UseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ajuste de inventario
// @Description  Resuelve el tipo de transacción según la dirección, reserva
//               el número en la terminal del usuario, valoriza renglones y
//               persiste cabecera + detalles de forma atómica.
// @Tags         ajustes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "sucursal_id, deposito_id, moneda_id, direccion (POSITIVE|NEGATIVE), fecha_documento, detalles"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ajustes [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateAdjustmentRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	docDate, err := time.Parse("2006-01-02", in.DocumentDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_documento inválida"})
	}

	input := adjustment.Input{
		UserID:       userID,
		BranchID:     in.BranchID,
		WarehouseID:  in.WarehouseID,
		CurrencyID:   in.CurrencyID,
		MotiveID:     in.MotiveID,
		Direction:    entity.AdjustmentDirection(in.Direction),
		DocumentDate: docDate,
		ExchangeRate: in.ExchangeRate,
		Note:         in.Note,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, adjustment.LineInput{
			ItemID:          l.ItemID,
			LineNumber:      l.LineNumber,
			Quantity:        l.Quantity,
			UnitCostLocal:   l.UnitCostLocal,
			UnitCostForeign: l.UnitCostForeign,
			AmountLocal:     l.AmountLocal,
			AmountForeign:   l.AmountForeign,
		})
	}

	doc, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponseFrom(doc))
}

// PeekNextNumber godoc
// @Summary      Próximo número de ajuste (sin reservar)
// @Tags         ajustes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ajustes/proximo-numero [get]
func (h *AdjustmentHandler) PeekNextNumber(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	number, err := h.uc.PeekNextNumber(c.Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"proximo_numero": number})
}

// Readiness godoc
// @Summary      Diagnóstico previo a crear un ajuste
// @Description  Indica si el usuario tiene terminal asignada y si los tipos
//               de ajuste positivo/negativo están configurados.
// @Tags         ajustes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  adjustment.Readiness
// @Router       /api/ajustes/estado [get]
func (h *AdjustmentHandler) Readiness(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	r, err := h.uc.CheckReadiness(c.Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(r)
}
