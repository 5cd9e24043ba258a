package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/infrastructure/http/v1/dto"
)

type productEntityHandler = EntityHandler[
	*product.Product,
	dto.CreateProductRequest,
	dto.UpdateProductRequest,
]

// ProductHandler serves the product catalog.
type ProductHandler struct {
	*productEntityHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	config := EntityHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.EntityService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *product.Product) any {
			return dto.FromProduct(entity)
		},
	}

	return &ProductHandler{
		productEntityHandler: NewEntityHandler(base, config),
		service:              service,
	}
}

// FindBySKU handles GET /products/by-sku/:sku.
func (h *ProductHandler) FindBySKU(c *gin.Context) {
	p, err := h.service.FindBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(p))
}
