package handler

import (
	"github.com/gin-gonic/gin"

	fleetapp "github.com/gatesec/backend/internal/application/fleet"
	"github.com/gatesec/backend/internal/interfaces/http/dto"
)

// VehicleHandler handles vehicle registry endpoints
type VehicleHandler struct {
	*BaseHandler
	vehicleService *fleetapp.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *fleetapp.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		BaseHandler:    NewBaseHandler(),
		vehicleService: vehicleService,
	}
}

// RegisterRoutes registers vehicle routes on the given router group
func (h *VehicleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.Create)
		vehicles.GET("", h.List)
		vehicles.GET("/:id", h.Get)
		vehicles.PUT("/:id", h.Update)
		vehicles.DELETE("/:id", h.Delete)
	}
}

// Create registers a vehicle
// @Router /api/v1/vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	var input fleetapp.CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, vehicle)
}

// List returns vehicles with pagination and search
// @Router /api/v1/vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vehicles, err := h.vehicleService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicles)
}

// Get returns a single vehicle with its driver roster
// @Router /api/v1/vehicles/{id} [get]
func (h *VehicleHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// Update changes a vehicle
// @Router /api/v1/vehicles/{id} [put]
func (h *VehicleHandler) Update(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var input fleetapp.UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), req.ID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// Delete removes a vehicle and detaches its drivers
// @Router /api/v1/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Vehicle deleted"})
}
