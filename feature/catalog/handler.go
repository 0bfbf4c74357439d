package catalog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog-sync/core/logger"
	"catalog-sync/feature/catalog/repository"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Post("/sync", h.HandleSync)
	group.Get("/products", h.HandleListProducts)
	group.Get("/products/:id", h.HandleGetProduct)
}

// syncRequest is the POST /catalog/sync body. All fields are optional.
type syncRequest struct {
	Suppliers []string `json:"suppliers"`
	Limit     int      `json:"limit"`
}

// HandleSync runs a supplier synchronization and returns its report.
// @Summary Run catalog sync
// @Description Fetch, normalize and persist the product feeds of the requested suppliers (all by default).
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body syncRequest false "Sync options"
// @Success 200 {object} ingest.Report "Sync report"
// @Failure 400 {object} map[string]string "Unknown supplier"
// @Router /catalog/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req syncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	report, err := h.service.Sync(c.Context(), req.Suppliers, req.Limit)
	if err != nil {
		l.Warn("Sync rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleListProducts returns stored products.
// @Summary List products
// @Description List stored products, newest first, optionally filtered by supplier.
// @Tags catalog
// @Produce json
// @Param source query string false "Supplier tag (midocean, xd-connects)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]any "Product page"
// @Failure 400 {object} map[string]string "Unknown supplier"
// @Router /catalog/products [get]
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	filter := repository.ListFilter{
		Source: c.Query("source"),
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}

	products, total, err := h.service.ListProducts(c.Context(), filter)
	if err != nil {
		l.Warn("Product listing rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"total":    total,
		"count":    len(products),
		"products": products,
	})
}

// HandleGetProduct returns one product with variants and assets.
// @Summary Get product
// @Description Get one product by internal id, including its variants and digital assets.
// @Tags catalog
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} models.Product "Product"
// @Failure 404 {object} map[string]string "Not found"
// @Router /catalog/products/{id} [get]
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	product, err := h.service.GetProduct(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "product not found",
		})
	}
	if err != nil {
		l.Error("Product lookup failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(product)
}
