package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// InsightHandler riesgo y antigüedad de devoluciones y reclamos de garantía.
type InsightHandler struct {
	uc *usecase.InsightUseCase
}

// NewInsightHandler construye el handler.
func NewInsightHandler(uc *usecase.InsightUseCase) *InsightHandler {
	return &InsightHandler{uc: uc}
}

// ReturnInsight godoc
// @Summary      Insight de una devolución
// @Tags         insights
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.InsightResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/insight [get]
func (h *InsightHandler) ReturnInsight(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ReturnInsight(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WarrantyClaimInsight godoc
// @Summary      Insight de un reclamo de garantía
// @Tags         insights
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reclamo"
// @Success      200  {object}  dto.InsightResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warranty-claims/{id}/insight [get]
func (h *InsightHandler) WarrantyClaimInsight(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.WarrantyClaimInsight(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReturnsReport resumen de devoluciones de la empresa.
func (h *InsightHandler) ReturnsReport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ReturnsReport(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WarrantyClaimsReport resumen de reclamos de la empresa.
func (h *InsightHandler) WarrantyClaimsReport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.WarrantyClaimsReport(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
