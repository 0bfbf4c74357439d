package quotes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog-sync/core/logger"
)

// Handler handles HTTP requests for quotes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the quotes routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/quotes")
	group.Post("/requests", h.HandleCreateRequest)
	group.Get("/requests", h.HandleListRequests)
	group.Get("/requests/:id", h.HandleGetRequest)
}

// HandleCreateRequest creates a request and runs the quote engine.
// @Summary Create quote request
// @Description Create a product request and collect quotes from every provider in parallel.
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body CreateRequestInput true "Request"
// @Success 201 {object} models.ProductRequest "Request with quotes"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /quotes/requests [post]
func (h *Handler) HandleCreateRequest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var input CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	request, err := h.service.CreateRequest(c.Context(), input)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "product not found",
		})
	}
	if err != nil {
		l.Error("Quote request failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// HandleListRequests returns all stored requests.
// @Summary List quote requests
// @Description List all product requests, newest first.
// @Tags quotes
// @Produce json
// @Success 200 {array} models.ProductRequest "Requests"
// @Router /quotes/requests [get]
func (h *Handler) HandleListRequests(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	requests, err := h.service.ListRequests(c.Context())
	if err != nil {
		l.Error("Request listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(requests)
}

// HandleGetRequest returns one request with its quotes.
// @Summary Get quote request
// @Description Get one product request by id, including its provider quotes.
// @Tags quotes
// @Produce json
// @Param id path string true "Request id"
// @Success 200 {object} models.ProductRequest "Request with quotes"
// @Failure 404 {object} map[string]string "Not found"
// @Router /quotes/requests/{id} [get]
func (h *Handler) HandleGetRequest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	request, err := h.service.GetRequest(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "request not found",
		})
	}
	if err != nil {
		l.Error("Request lookup failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(request)
}
