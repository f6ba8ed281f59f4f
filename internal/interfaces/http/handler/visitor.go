package handler

import (
	"github.com/gin-gonic/gin"

	fleetapp "github.com/gatesec/backend/internal/application/fleet"
	"github.com/gatesec/backend/internal/interfaces/http/dto"
)

// VisitorHandler handles visitor registry endpoints
type VisitorHandler struct {
	*BaseHandler
	visitorService *fleetapp.VisitorService
}

// NewVisitorHandler creates a new visitor handler
func NewVisitorHandler(visitorService *fleetapp.VisitorService) *VisitorHandler {
	return &VisitorHandler{
		BaseHandler:    NewBaseHandler(),
		visitorService: visitorService,
	}
}

// RegisterRoutes registers visitor routes on the given router group
func (h *VisitorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	visitors := rg.Group("/visitors")
	{
		visitors.POST("", h.Create)
		visitors.GET("", h.List)
		visitors.GET("/:id", h.Get)
		visitors.PUT("/:id", h.Update)
		visitors.DELETE("/:id", h.Delete)
	}
}

// Create registers a visitor
// @Router /api/v1/visitors [post]
func (h *VisitorHandler) Create(c *gin.Context) {
	var input fleetapp.CreateVisitorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visitor, err := h.visitorService.Create(c.Request.Context(), input, h.getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, visitor)
}

// List returns visitors with pagination and search
// @Router /api/v1/visitors [get]
func (h *VisitorHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visitors, err := h.visitorService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, visitors)
}

// Get returns a single visitor
// @Router /api/v1/visitors/{id} [get]
func (h *VisitorHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visitor, err := h.visitorService.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, visitor)
}

// Update changes a visitor
// @Router /api/v1/visitors/{id} [put]
func (h *VisitorHandler) Update(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var input fleetapp.UpdateVisitorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visitor, err := h.visitorService.Update(c.Request.Context(), req.ID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, visitor)
}

// Delete removes a visitor
// @Router /api/v1/visitors/{id} [delete]
func (h *VisitorHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.visitorService.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Visitor deleted"})
}
