package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobfair/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
	rg.POST("/auth/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration payload")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if err == ErrEmailTaken {
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":         result.User,
		"access_token": result.AccessToken,
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Logout is a client-side token drop for the stateless JWT scheme; the
// endpoint exists so clients have a uniform call to end a session.
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{})
}
