package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/repository"
)

// ParcelController handles parcel HTTP requests
type ParcelController struct {
	parcels repository.ParcelRepository
	logger  *slog.Logger
}

// NewParcelController creates a new parcel controller
func NewParcelController(parcels repository.ParcelRepository, logger *slog.Logger) *ParcelController {
	return &ParcelController{parcels: parcels, logger: logger}
}

// Get handles GET /parcelas/:parcela_id
func (c *ParcelController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "parcela_id")
	if !ok {
		return
	}
	parcel, err := c.parcels.Get(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, parcel)
}

// List handles GET /parcelas/
func (c *ParcelController) List(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	parcels, err := c.parcels.List(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, parcels)
}

// ListByClient handles GET /parcelas/cliente/:cliente_id
func (c *ParcelController) ListByClient(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "cliente_id")
	if !ok {
		return
	}
	offset, limit := pageParams(ctx)
	parcels, err := c.parcels.ListByClient(clientID, offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, parcels)
}

// Create handles POST /parcelas/
func (c *ParcelController) Create(ctx *gin.Context) {
	var in repository.CreateParcelInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	parcel, err := c.parcels.Create(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("parcel created", "parcela_id", parcel.ID, "cliente_id", parcel.ClientID)
	ctx.JSON(http.StatusCreated, parcel)
}

// Update handles PUT /parcelas/:parcela_id. Address, postal code and
// cadastral reference only change with the confirmation flag set.
func (c *ParcelController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "parcela_id")
	if !ok {
		return
	}
	var in repository.UpdateParcelInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	parcel, err := c.parcels.Update(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, parcel)
}

// Delete handles DELETE /parcelas/:parcela_id. Soft delete.
func (c *ParcelController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "parcela_id")
	if !ok {
		return
	}
	if err := c.parcels.Delete(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("parcel deactivated", "parcela_id", id)
	ctx.JSON(http.StatusOK, gin.H{"message": "Parcela desactivada correctamente"})
}
