package handler

import (
	"net/http"

	"github.com/Pili-73/Libreria-Pier/internal/apierror"
	"github.com/Pili-73/Libreria-Pier/internal/dto"
	"github.com/Pili-73/Libreria-Pier/internal/middleware"
	"github.com/Pili-73/Libreria-Pier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

// usuarioID extracts the authenticated user's id from the JWT claims.
func usuarioID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(apierror.KindNoSession, "No hay sesión activa"))
		return uuid.Nil, false
	}
	return id, true
}

// Obtener godoc
// @Summary Carrito del usuario autenticado con total y número de items
// @Tags carrito
// @Produce json
// @Success 200 {object} dto.CarritoResponse
// @Router /v1/carrito [get]
func (h *CarritoHandler) Obtener(c *gin.Context) {
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) Agregar(c *gin.Context) {
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Agregar(c.Request.Context(), uid, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CarritoHandler) ActualizarCantidad(c *gin.Context) {
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.KindValidation, "ID invalido"))
		return
	}
	// Cantidad may legitimately be 0 or negative (both mean "remove"),
	// so it is bound without a min tag and checked by the service.
	var req dto.ActualizarCantidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.KindValidation, "JSON invalido: "+err.Error()))
		return
	}
	if err := h.svc.ActualizarCantidad(c.Request.Context(), uid, itemID, req.Cantidad); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CarritoHandler) Quitar(c *gin.Context) {
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.KindValidation, "ID invalido"))
		return
	}
	if err := h.svc.Quitar(c.Request.Context(), uid, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CarritoHandler) Vaciar(c *gin.Context) {
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	if err := h.svc.Vaciar(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CarritoHandler) Checkout(c *gin.Context) {
	uid, ok := usuarioID(c)
	if !ok {
		return
	}
	ses := middleware.GetSesion(c)
	email := ""
	if ses != nil {
		email = ses.Email
	}
	resp, err := h.svc.Checkout(c.Request.Context(), uid, email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
