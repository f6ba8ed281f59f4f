package handler

import (
	"github.com/gin-gonic/gin"

	securityapp "github.com/gatesec/backend/internal/application/security"
	"github.com/gatesec/backend/internal/interfaces/http/dto"
	"github.com/gatesec/backend/internal/interfaces/http/middleware"
)

// CheckpointHandler handles checkpoint endpoints. Mutations are
// restricted to admins; security staff read checkpoints to check
// items in and out.
type CheckpointHandler struct {
	*BaseHandler
	checkpointService *securityapp.CheckpointService
}

// NewCheckpointHandler creates a new checkpoint handler
func NewCheckpointHandler(checkpointService *securityapp.CheckpointService) *CheckpointHandler {
	return &CheckpointHandler{
		BaseHandler:       NewBaseHandler(),
		checkpointService: checkpointService,
	}
}

// RegisterRoutes registers checkpoint routes on the given router group
func (h *CheckpointHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkpoints := rg.Group("/checkpoints")
	{
		checkpoints.GET("", h.List)
		checkpoints.GET("/:id", h.Get)

		admin := checkpoints.Group("", middleware.RequireRole("admin"))
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// Create adds a checkpoint
// @Router /api/v1/checkpoints [post]
func (h *CheckpointHandler) Create(c *gin.Context) {
	var input securityapp.CreateCheckpointInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	checkpoint, err := h.checkpointService.Create(c.Request.Context(), input, h.getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, checkpoint)
}

// List returns checkpoints with pagination and search
// @Router /api/v1/checkpoints [get]
func (h *CheckpointHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	checkpoints, err := h.checkpointService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, checkpoints)
}

// Get returns a single checkpoint
// @Router /api/v1/checkpoints/{id} [get]
func (h *CheckpointHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	checkpoint, err := h.checkpointService.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, checkpoint)
}

// Update changes a checkpoint
// @Router /api/v1/checkpoints/{id} [put]
func (h *CheckpointHandler) Update(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var input securityapp.UpdateCheckpointInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	checkpoint, err := h.checkpointService.Update(c.Request.Context(), req.ID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, checkpoint)
}

// Delete removes a checkpoint
// @Router /api/v1/checkpoints/{id} [delete]
func (h *CheckpointHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.checkpointService.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Checkpoint deleted"})
}
