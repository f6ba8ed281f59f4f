package handler

import (
	"github.com/gin-gonic/gin"

	fleetapp "github.com/gatesec/backend/internal/application/fleet"
	"github.com/gatesec/backend/internal/interfaces/http/dto"
)

// DriverHandler handles driver registry endpoints
type DriverHandler struct {
	*BaseHandler
	driverService *fleetapp.DriverService
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(driverService *fleetapp.DriverService) *DriverHandler {
	return &DriverHandler{
		BaseHandler:   NewBaseHandler(),
		driverService: driverService,
	}
}

// RegisterRoutes registers driver routes on the given router group
func (h *DriverHandler) RegisterRoutes(rg *gin.RouterGroup) {
	drivers := rg.Group("/drivers")
	{
		drivers.POST("", h.Create)
		drivers.GET("", h.List)
		drivers.GET("/:id", h.Get)
		drivers.PUT("/:id", h.Update)
		drivers.DELETE("/:id", h.Delete)
	}
}

// Create registers a driver, optionally assigned to a vehicle
// @Router /api/v1/drivers [post]
func (h *DriverHandler) Create(c *gin.Context) {
	var input fleetapp.CreateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), input, h.getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, driver)
}

// List returns drivers with pagination and search
// @Router /api/v1/drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	drivers, err := h.driverService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, drivers)
}

// Get returns a single driver
// @Router /api/v1/drivers/{id} [get]
func (h *DriverHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// Update changes a driver, including vehicle reassignment
// @Router /api/v1/drivers/{id} [put]
func (h *DriverHandler) Update(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var input fleetapp.UpdateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.Update(c.Request.Context(), req.ID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// Delete removes a driver
// @Router /api/v1/drivers/{id} [delete]
func (h *DriverHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Driver deleted"})
}
