package company

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobfair/internal/pkg/response"
	"jobfair/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes binds the read endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies", h.ListCompanies)
	rg.GET("/companies/:id", h.GetCompany)
}

// RegisterAdminRoutes binds the write endpoints; the caller wraps the group
// with JWT + admin-role middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies", h.CreateCompany)
	rg.PUT("/companies/:id", h.UpdateCompany)
	rg.DELETE("/companies/:id", h.DeleteCompany)
}

func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":     len(companies),
		"companies": companies,
	})
}

func (h *Handler) GetCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	company, err := h.service.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"company": company})
}

func (h *Handler) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ValidationError(c, fields)
		return
	}

	company, err := h.service.CreateCompany(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"company": company})
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ValidationError(c, fields)
		return
	}

	company, err := h.service.UpdateCompany(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"company": company})
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	if err := h.service.DeleteCompany(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Company not found")
	case ErrNameTaken:
		response.Error(c, http.StatusConflict, "NAME_TAKEN", "Company name already registered")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process company")
	}
}
