package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
	"github.com/ridloal/skincare-store-api/internal/platform/storage"
	"github.com/ridloal/skincare-store-api/internal/product/domain"
	"github.com/ridloal/skincare-store-api/internal/product/repository"
	"github.com/ridloal/skincare-store-api/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
	uploads        *storage.Store
}

func NewProductHandler(ps service.ProductService, uploads *storage.Store) *ProductHandler {
	return &ProductHandler{productService: ps, uploads: uploads}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/:id", h.GetProduct)
		productRoutes.POST("", requireAdmin, h.CreateProduct)
		productRoutes.PUT("/:id", requireAdmin, h.UpdateProduct)
		productRoutes.DELETE("/:id", requireAdmin, h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("ListProducts Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("GetProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct accepts the admin multipart form with an optional image.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	req, ok := h.bindUpsertForm(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		logger.Error("CreateProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	req, ok := h.bindUpsertForm(c)
	if !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("UpdateProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("DeleteProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *ProductHandler) bindUpsertForm(c *gin.Context) (domain.UpsertProductRequest, bool) {
	var req domain.UpsertProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return req, false
	}

	if file, err := c.FormFile("image"); err == nil {
		ref, saveErr := h.uploads.Save(file, storage.SubdirProducts)
		if saveErr != nil {
			if errors.Is(saveErr, storage.ErrFileTooLarge) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product image exceeds the 5MB limit"})
				return req, false
			}
			logger.Error("bindUpsertForm: failed to store product image", saveErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store product image"})
			return req, false
		}
		req.Image = ref
	} else if !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
		return req, false
	}
	return req, true
}
