package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/apperr"
)

// respondError maps domain errors onto HTTP statuses. Anything outside the
// taxonomy is a 500 with a generic body; the detail goes to the log only.
func respondError(ctx *gin.Context, logger *slog.Logger, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status, label := statusFor(appErr)
		if status == http.StatusUnauthorized {
			ctx.Header("WWW-Authenticate", "Bearer")
		}
		ctx.JSON(status, gin.H{
			"error":   label,
			"message": appErr.Message,
		})
		return
	}

	logger.Error("unhandled error",
		"method", ctx.Request.Method,
		"path", ctx.Request.URL.Path,
		"error", err.Error(),
	)
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": "Error interno del servidor",
	})
}

func statusFor(appErr *apperr.Error) (int, string) {
	switch {
	case errors.Is(appErr, apperr.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(appErr, apperr.ErrDuplicate):
		return http.StatusConflict, "Duplicate"
	case errors.Is(appErr, apperr.ErrReferentialBlock):
		return http.StatusBadRequest, "Referential integrity"
	case errors.Is(appErr, apperr.ErrConfirmationRequired):
		return http.StatusBadRequest, "Confirmation required"
	case errors.Is(appErr, apperr.ErrConflict):
		return http.StatusConflict, "Conflict"
	case errors.Is(appErr, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(appErr, apperr.ErrValidation):
		return http.StatusUnprocessableEntity, "Validation error"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondBindError turns gin binding failures into a 422 with the validator
// detail in the message.
func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "Validation error",
		"message": err.Error(),
	})
}

// pathID parses a numeric path parameter. A non-numeric value is a 422, the
// same as a body validation failure.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Validation error",
			"message": name + " debe ser un entero positivo",
		})
		return 0, false
	}
	return uint(id), true
}

// pageParams reads skip/limit query parameters. Bad values fall back to the
// repository defaults rather than failing the request.
func pageParams(ctx *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	return offset, limit
}
