package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/skincare-store-api/internal/admin/domain"
	"github.com/ridloal/skincare-store-api/internal/admin/service"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
)

// ContextAdminKey is where RequireAdmin stores the authenticated admin.
const ContextAdminKey = "admin"

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(as service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	adminRoutes := router.Group("/admin")
	{
		adminRoutes.POST("/register", h.Register)
		adminRoutes.POST("/login", h.Login)
	}
}

func (h *AdminHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	admin, err := h.adminService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Register Hdl: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register admin"})
		}
		return
	}
	c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	resp, err := h.adminService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Login Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RequireAdmin is the bearer-token gate for back-office routes.
func (h *AdminHandler) RequireAdmin(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token, authorization denied"})
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	admin, err := h.adminService.Authenticate(c.Request.Context(), tokenString)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
		case errors.Is(err, service.ErrInvalidToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		default:
			logger.Error("RequireAdmin: authentication error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error during authentication"})
		}
		return
	}

	c.Set(ContextAdminKey, admin)
	c.Next()
}
