package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/server/services"
)

// errorResponse is the uniform failure body.
type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// fail translates a service error into a status code and body.
func fail(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Field: verr.Field, Message: verr.Message})

	case errors.Is(err, common.ErrAccountDeactivated):
		c.JSON(http.StatusForbidden, errorResponse{Code: common.DeactivatedCode, Message: "account deactivated"})

	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Message: "unauthorized"})

	case errors.Is(err, common.ErrorForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Message: "forbidden"})

	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Message: "not found"})

	// Backstop for a duplicate that escaped the service untranslated; the
	// client reads any remaining 4xx as a validation failure.
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Message: "already exists"})

	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}
}

// badRequest reports an unparseable payload.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
}
