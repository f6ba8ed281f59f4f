package handler

import (
	"github.com/gin-gonic/gin"

	securityapp "github.com/gatesec/backend/internal/application/security"
	"github.com/gatesec/backend/internal/interfaces/http/dto"
	"github.com/gatesec/backend/internal/interfaces/http/middleware"
)

// ActivityHandler handles the checkpoint activity ledger endpoints
type ActivityHandler struct {
	*BaseHandler
	activityService *securityapp.ActivityService
}

// NewActivityHandler creates a new activity ledger handler
func NewActivityHandler(activityService *securityapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler:     NewBaseHandler(),
		activityService: activityService,
	}
}

// RegisterRoutes registers ledger routes on the given router group
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	records := rg.Group("/checkinout")
	{
		records.POST("/check-in", h.CheckIn)
		records.PUT("/check-out/:id", h.CheckOut)
		records.GET("", h.List)
		records.GET("/:id", h.Get)
		records.DELETE("/:id", middleware.RequireRole("admin"), h.Delete)
	}
}

// CheckIn opens a ledger record for a batch of vehicles or visitors
// @Router /api/v1/checkinout/check-in [post]
func (h *ActivityHandler) CheckIn(c *gin.Context) {
	var input securityapp.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.activityService.CheckIn(c.Request.Context(), input, h.getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, record)
}

// CheckOut closes an open ledger record
// @Router /api/v1/checkinout/check-out/{id} [put]
func (h *ActivityHandler) CheckOut(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.activityService.CheckOut(c.Request.Context(), req.ID, h.getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// List returns ledger records, newest first
// @Router /api/v1/checkinout [get]
func (h *ActivityHandler) List(c *gin.Context) {
	var input securityapp.ListRecordsInput
	if err := c.ShouldBindQuery(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.activityService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Records, result.Total, result.Page, result.PageSize)
}

// Get returns a single enriched ledger record
// @Router /api/v1/checkinout/{id} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.activityService.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// Delete removes a ledger record. Entities referenced by the record are
// untouched.
// @Router /api/v1/checkinout/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Record deleted"})
}
