package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/apperr"
	"sira-backend/internal/repository"
	"sira-backend/internal/service"
)

// AuthController handles registration and token issuance
type AuthController struct {
	authService service.AuthService
	logger      *slog.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(authService service.AuthService, logger *slog.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

// loginForm is the OAuth2 password grant form. The CIF travels in the
// username field.
type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Register handles POST /auth/register. Unlike the rest of the API, a
// duplicate CIF here is a 400 so signup forms get a plain bad-request.
func (c *AuthController) Register(ctx *gin.Context) {
	var in repository.CreateClientInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		respondBindError(ctx, err)
		return
	}

	client, err := c.authService.Register(in)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && errors.Is(appErr, apperr.ErrDuplicate) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Duplicate",
				"message": appErr.Message,
			})
			return
		}
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("client registered", "cliente_id", client.ID, "cif", client.CIF)
	ctx.JSON(http.StatusCreated, client)
}

// Token handles POST /auth/token with an OAuth2 password grant form.
func (c *AuthController) Token(ctx *gin.Context) {
	var form loginForm
	if err := ctx.ShouldBind(&form); err != nil {
		respondBindError(ctx, err)
		return
	}

	token, err := c.authService.Login(form.Username, form.Password)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, token)
}
