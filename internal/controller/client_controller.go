package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/repository"
)

// ClientController handles client-account HTTP requests
type ClientController struct {
	clients repository.ClientRepository
	logger  *slog.Logger
}

// NewClientController creates a new client controller
func NewClientController(clients repository.ClientRepository, logger *slog.Logger) *ClientController {
	return &ClientController{clients: clients, logger: logger}
}

// Get handles GET /clientes/:cliente_id. Deactivated clients are still
// returned so their data stays reachable.
func (c *ClientController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "cliente_id")
	if !ok {
		return
	}
	client, err := c.clients.Get(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, client)
}

// List handles GET /clientes/. Only active clients are listed.
func (c *ClientController) List(ctx *gin.Context) {
	offset, limit := pageParams(ctx)
	clients, err := c.clients.List(offset, limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, clients)
}

// Create handles POST /clientes/
func (c *ClientController) Create(ctx *gin.Context) {
	var in repository.CreateClientInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	client, err := c.clients.Create(in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("client created", "cliente_id", client.ID, "cif", client.CIF)
	ctx.JSON(http.StatusCreated, client)
}

// Update handles PUT /clientes/:cliente_id
func (c *ClientController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "cliente_id")
	if !ok {
		return
	}
	var in repository.UpdateClientInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}
	client, err := c.clients.Update(id, in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, client)
}

// Delete handles DELETE /clientes/:cliente_id. The client is deactivated,
// not removed.
func (c *ClientController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "cliente_id")
	if !ok {
		return
	}
	if err := c.clients.Delete(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.logger.Info("client deactivated", "cliente_id", id)
	ctx.JSON(http.StatusOK, gin.H{"message": "Cliente desactivado correctamente"})
}
