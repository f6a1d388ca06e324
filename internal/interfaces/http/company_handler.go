package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/application/usecase"
	"github.com/jhoicas/Invoicing-api/internal/domain"
)

// CompanyHandler HTTP handlers for companies.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// GetMine GET /api/companies/my
func (h *CompanyHandler) GetMine(c *fiber.Ctx) error {
	out, err := h.uc.GetMine(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID GET /api/companies/:id. Only the caller's own company is visible.
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", domain.ErrCompanyNotFound)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create POST /api/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, "/api/companies/"+out.ID, out)
}

// Update PUT /api/companies/:id
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", domain.ErrCompanyNotFound)
	if err != nil {
		return err
	}
	var in dto.CompanyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete DELETE /api/companies/:id
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", domain.ErrCompanyNotFound)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
