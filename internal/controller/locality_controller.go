package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/repository"
)

// LocalityController handles locality HTTP requests. Localities are keyed by
// postal code, not a synthetic ID.
type LocalityController struct {
	localities repository.LocalityRepository
	logger     *slog.Logger
}

// NewLocalityController creates a new locality controller
func NewLocalityController(localities repository.LocalityRepository, logger *slog.Logger) *LocalityController {
	return &LocalityController{localities: localities, logger: logger}
}

// Get handles GET /localidades/:codigo_postal
func (c *LocalityController) Get(ctx *gin.Context) {
	locality, err := c.localities.Get(ctx.Param("codigo_postal"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, locality)
}

// List handles GET /localidades/
func (c *LocalityController) List(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	localities, err := c.localities.List(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, localities)
}

// Create handles POST /localidades/
func (c *LocalityController) Create(ctx *gin.Context) {
	var in repository.CreateLocalityInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	locality, err := c.localities.Create(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("locality created", "codigo_postal", locality.PostalCode)
	ctx.JSON(http.StatusCreated, locality)
}

// Update handles PUT /localidades/:codigo_postal. Changing the postal code
// itself requires the confirmation flag.
func (c *LocalityController) Update(ctx *gin.Context) {
	var in repository.UpdateLocalityInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	locality, err := c.localities.Update(ctx.Param("codigo_postal"), in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, locality)
}

// Delete handles DELETE /localidades/:codigo_postal
func (c *LocalityController) Delete(ctx *gin.Context) {
	code := ctx.Param("codigo_postal")
	if err := c.localities.Delete(code); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("locality deleted", "codigo_postal", code)
	ctx.JSON(http.StatusOK, gin.H{"message": "Localidad eliminada correctamente"})
}
