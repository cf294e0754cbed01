package handlers

import (
	"github.com/gin-gonic/gin"

	"textile/internal/domain/reports"
	"textile/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetProductionRegister handles GET /reports/print-production-register
func (h *ReportsHandler) GetProductionRegister(c *gin.Context) {
	var req dto.ProductionRegisterRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetProductionRegister(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProductionRegister(report))
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/print-production-register", h.GetProductionRegister)
}
