package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/repository"
)

// GreenhouseController handles greenhouse HTTP requests
type GreenhouseController struct {
	greenhouses repository.GreenhouseRepository
	logger      *slog.Logger
}

// NewGreenhouseController creates a new greenhouse controller
func NewGreenhouseController(greenhouses repository.GreenhouseRepository, logger *slog.Logger) *GreenhouseController {
	return &GreenhouseController{greenhouses: greenhouses, logger: logger}
}

// Get handles GET /invernaderos/:invernadero_id
func (c *GreenhouseController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "invernadero_id")
	if !ok {
		return
	}
	greenhouse, err := c.greenhouses.Get(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, greenhouse)
}

// List handles GET /invernaderos/
func (c *GreenhouseController) List(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	greenhouses, err := c.greenhouses.List(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, greenhouses)
}

// ListByParcel handles GET /invernaderos/parcela/:parcela_id
func (c *GreenhouseController) ListByParcel(ctx *gin.Context) {
	parcelID, ok := pathID(ctx, "parcela_id")
	if !ok {
		return
	}
	offset, limit := pageParams(ctx)
	greenhouses, err := c.greenhouses.ListByParcel(parcelID, offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, greenhouses)
}

// Create handles POST /invernaderos/
func (c *GreenhouseController) Create(ctx *gin.Context) {
	var in repository.CreateGreenhouseInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	greenhouse, err := c.greenhouses.Create(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("greenhouse created", "invernadero_id", greenhouse.ID, "parcela_id", greenhouse.ParcelID)
	ctx.JSON(http.StatusCreated, greenhouse)
}

// Update handles PUT /invernaderos/:invernadero_id. The parcel link is
// immutable; the crop can rotate or be cleared.
func (c *GreenhouseController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "invernadero_id")
	if !ok {
		return
	}
	var in repository.UpdateGreenhouseInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	greenhouse, err := c.greenhouses.Update(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, greenhouse)
}

// Delete handles DELETE /invernaderos/:invernadero_id. Soft delete.
func (c *GreenhouseController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "invernadero_id")
	if !ok {
		return
	}
	if err := c.greenhouses.Delete(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("greenhouse deactivated", "invernadero_id", id)
	ctx.JSON(http.StatusOK, gin.H{"message": "Invernadero desactivado correctamente"})
}
