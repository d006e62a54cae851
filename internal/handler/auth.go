package handler

import (
	"net/http"

	"github.com/Pili-73/Libreria-Pier/internal/dto"
	"github.com/Pili-73/Libreria-Pier/internal/middleware"
	"github.com/Pili-73/Libreria-Pier/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Iniciar sesión con nombre de usuario y contraseña
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Registro(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.SignOut(c.Request.Context(), claims.SID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me re-validates the session against the backend profile and returns
// the refreshed user projection.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CurrentUser(c.Request.Context(), claims.SID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
