package recommended

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterPublicRoutes must run before the product handler so
// /api/v1/product/search is not read as a product id.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/recommendations", h.postRecommendations)
	app.Get("/api/v1/product/search", h.getSearch)
}

func (h *Handler) postRecommendations(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return h.respond(c, *req)
}

// getSearch is the search-bar variant: ?q=...&limit=...
func (h *Handler) getSearch(c *fiber.Ctx) error {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	return h.respond(c, Request{UserPrompt: c.Query("q"), MaxResults: limit})
}

func (h *Handler) respond(c *fiber.Ctx, req Request) error {
	resp, err := h.service.Recommend(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyPrompt):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrCatalogUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(resp)
}
