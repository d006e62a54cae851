package dto

import "github.com/Pili-73/Libreria-Pier/internal/model"

// ImagenPorDefecto is served when a book has no cover image.
const ImagenPorDefecto = "images/default.jpg"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ActualizarLibroRequest struct {
	Titulo      *string       `json:"titulo"      validate:"omitempty,min=1,max=200"`
	Autor       *string       `json:"autor"       validate:"omitempty,min=1,max=150"`
	Precio      *model.Precio `json:"precio"`
	Imagen      *string       `json:"imagen"`
	Descripcion *string       `json:"descripcion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LibroResponse struct {
	ID          string       `json:"id"`
	Titulo      string       `json:"titulo"`
	Autor       string       `json:"autor"`
	Precio      model.Precio `json:"precio"`
	Imagen      string       `json:"imagen"`
	Descripcion *string      `json:"descripcion"`
}

// FromLibro maps a model to its response, applying the image fallback.
func FromLibro(l model.Libro) LibroResponse {
	imagen := ImagenPorDefecto
	if l.Imagen != nil && *l.Imagen != "" {
		imagen = *l.Imagen
	}
	return LibroResponse{
		ID:          l.ID.String(),
		Titulo:      l.Titulo,
		Autor:       l.Autor,
		Precio:      l.Precio,
		Imagen:      imagen,
		Descripcion: l.Descripcion,
	}
}
