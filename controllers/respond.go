package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petpalid/petcare-app/services"
	"github.com/petpalid/petcare-app/utils"
)

// ErrNoPermission dipakai untuk check role inline di controller.
var ErrNoPermission = errors.New("you do not have permission")

// respondServiceError memetakan error taxonomy dari services ke HTTP status
// code, supaya client dapat pesan yang stabil dan deterministik.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrForbidden):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrIllegalTransition):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, services.ErrExpired):
		utils.RespondError(c, http.StatusGone, err)
	case errors.Is(err, services.ErrConflict):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// currentUser mengambil user_id + role yang diset auth middleware.
func currentUser(c *gin.Context) (uint, string, bool) {
	idVal, ok := c.Get("user_id")
	if !ok {
		return 0, "", false
	}
	id, ok := idVal.(uint)
	if !ok {
		return 0, "", false
	}
	roleVal, _ := c.Get("role")
	role, _ := roleVal.(string)
	return id, role, true
}
