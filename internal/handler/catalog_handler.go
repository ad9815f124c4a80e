package handler

import (
	"errors"
	"log"

	"go-catalog-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// respondError maps service failures to wire responses. Anything that is not
// a known client error is logged and masked.
func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrProductNotFound) {
		return c.Status(404).JSON(fiber.Map{"message": err.Error()})
	}
	if service.IsValidationError(err) {
		return c.Status(400).JSON(fiber.Map{"message": err.Error()})
	}
	log.Println("Internal error:", err)
	return c.Status(500).JSON(fiber.Map{"message": "Something went wrong."})
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	result, err := h.service.ListProducts(
		c.Context(),
		c.Query("search", "{}"),
		c.Query("page"),
		c.Query("limit"),
		c.BaseURL(),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Context(), c.Params("id"), c.Query("status"), c.BaseURL())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid form data."})
	}

	// Missing file is reported by the service so field checks run first
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	product, err := h.service.CreateProduct(c.Context(), &req, image)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}
