package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/dto"
)

// validate instancia compartida: la validación estructural de los payloads
// ocurre acá, en el borde; los casos de uso asumen forma ya validada.
var validate = validator.New()

// parseAndValidate parsea el body JSON a out y corre las reglas de struct.
// ok=false significa que la respuesta 400 ya fue escrita; el handler debe
// retornar err sin seguir.
func parseAndValidate(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return true, nil
}
