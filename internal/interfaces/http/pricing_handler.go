package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// PricingHandler precios de repuestos por nivel.
type PricingHandler struct {
	uc *usecase.PricingUseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *usecase.PricingUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// Quote godoc
// @Summary      Precio de un repuesto para un nivel
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del repuesto"
// @Param        level  query  string  false  "RETAIL|FLEET|WHOLESALE"  default(RETAIL)
// @Success      200    {object}  dto.PriceQuoteResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/price [get]
func (h *PricingHandler) Quote(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Quote(c.UserContext(), companyID, c.Params("id"), c.Query("level"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PriceSheet godoc
// @Summary      Hoja de precios de un repuesto (todos los niveles)
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del repuesto"
// @Success      200  {object}  dto.PriceSheetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/prices [get]
func (h *PricingHandler) PriceSheet(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.PriceSheet(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// JobHandler costeo de trabajos de plasma.
type JobHandler struct {
	uc *usecase.JobCostUseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *usecase.JobCostUseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Calculate godoc
// @Summary      Costear trabajo de corte por plasma
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateJobRequest  true  "Líneas del trabajo"
// @Success      200   {object}  dto.CalculateJobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/jobs/calculate [post]
func (h *JobHandler) Calculate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CalculateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Calculate(c.UserContext(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
