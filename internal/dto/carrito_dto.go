package dto

import (
	"github.com/Pili-73/Libreria-Pier/internal/model"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AgregarItemRequest struct {
	LibroID  string `json:"libro_id" validate:"required,uuid"`
	Cantidad int    `json:"cantidad" validate:"omitempty,min=1"`
}

type ActualizarCantidadRequest struct {
	Cantidad int `json:"cantidad"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ItemCarritoResponse is the materialized join the views consume:
// the cart row identity plus the flattened book fields.
type ItemCarritoResponse struct {
	CartItemID  string       `json:"cart_item_id"`
	Cantidad    int          `json:"cantidad"`
	LibroID     string       `json:"libro_id"`
	Titulo      string       `json:"titulo"`
	Autor       string       `json:"autor"`
	Precio      model.Precio `json:"precio"`
	Imagen      string       `json:"imagen"`
	Descripcion *string      `json:"descripcion"`
}

type CarritoResponse struct {
	Items     []ItemCarritoResponse `json:"items"`
	Total     decimal.Decimal       `json:"total"`
	ItemCount int                   `json:"item_count"`
}

type CheckoutResponse struct {
	Mensaje string          `json:"mensaje"`
	Total   decimal.Decimal `json:"total"`
}
