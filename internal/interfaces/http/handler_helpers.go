package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Invoicing-api/internal/application/dto"
)

// pathID reads a uuid path parameter. A malformed id cannot name any row,
// so it is reported as notFound instead of reaching storage.
func pathID(c *fiber.Ctx, name string, notFound error) (string, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return "", notFound
	}
	return id.String(), nil
}

func pageQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return p, badBody(err)
	}
	p.DefaultPage()
	return p, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return badBody(err)
	}
	return nil
}

// created answers 201 with a Location header.
func created(c *fiber.Ctx, location string, body interface{}) error {
	c.Location(location)
	return c.Status(fiber.StatusCreated).JSON(body)
}
