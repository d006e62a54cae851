package handler

import (
	"net/http"

	"github.com/Pili-73/Libreria-Pier/internal/apierror"
	"github.com/Pili-73/Libreria-Pier/internal/dto"
	"github.com/Pili-73/Libreria-Pier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LibrosHandler struct{ svc service.CatalogoService }

func NewLibrosHandler(svc service.CatalogoService) *LibrosHandler {
	return &LibrosHandler{svc: svc}
}

// Listar godoc
// @Summary Catálogo completo ordenado por título (sin autenticación)
// @Tags libros
// @Produce json
// @Success 200 {array} dto.LibroResponse
// @Router /v1/libros [get]
func (h *LibrosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LibrosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.KindValidation, "ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LibrosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.KindValidation, "ID invalido"))
		return
	}
	var req dto.ActualizarLibroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LibrosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.KindValidation, "ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
