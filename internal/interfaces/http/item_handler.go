package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/application/usecase"
	"github.com/jhoicas/Invoicing-api/internal/domain"
)

// ItemHandler HTTP handlers for items of the caller's company.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return created(c, "/api/items/"+out.ID, out)
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", domain.ErrItemNotFound)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", domain.ErrItemNotFound)
	if err != nil {
		return err
	}
	var in dto.ItemRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", domain.ErrItemNotFound)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
