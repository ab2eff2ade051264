package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/ridloal/skincare-store-api/internal/order/domain"
	"github.com/ridloal/skincare-store-api/internal/order/repository"
	"github.com/ridloal/skincare-store-api/internal/order/service"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
	"github.com/ridloal/skincare-store-api/internal/platform/storage"
)

type OrderHandler struct {
	orderService service.OrderService
	uploads      *storage.Store
}

func NewOrderHandler(os service.OrderService, uploads *storage.Store) *OrderHandler {
	return &OrderHandler{orderService: os, uploads: uploads}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	orderRoutes := router.Group("/orders")
	{
		orderRoutes.POST("", h.CreateOrder)
		orderRoutes.GET("/:id", h.GetOrder) // public order tracking
		orderRoutes.GET("", requireAdmin, h.ListOrders)
		orderRoutes.PUT("/:id/status", requireAdmin, h.UpdateStatus)
	}
}

// CreateOrder accepts a multipart form: "cart" and "customerInfo" are
// JSON-encoded fields, "paymentScreenshot" is an optional image. The JSON
// is decoded into typed structs and validated before the service runs.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest

	cartField := c.PostForm("cart")
	if err := json.Unmarshal([]byte(cartField), &req.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart payload"})
		return
	}
	customerField := c.PostForm("customerInfo")
	if err := json.Unmarshal([]byte(customerField), &req.CustomerInfo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customerInfo payload"})
		return
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	if file, err := c.FormFile("paymentScreenshot"); err == nil {
		ref, saveErr := h.uploads.Save(file, storage.SubdirPayments)
		if saveErr != nil {
			if errors.Is(saveErr, storage.ErrFileTooLarge) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Payment screenshot exceeds the 5MB limit"})
				return
			}
			logger.Error("CreateOrder Hdl: failed to store payment screenshot", saveErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		req.PaymentProof = &ref
	} else if !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment screenshot upload"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("CreateOrder Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		logger.Error("GetOrder Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	var statuses []domain.OrderStatus
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			statuses = append(statuses, domain.OrderStatus(strings.TrimSpace(part)))
		}
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), statuses)
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("ListOrders Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req domain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case service.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			logger.Error("UpdateStatus Hdl: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}
	c.JSON(http.StatusOK, order)
}
