package model

import (
	"time"

	"github.com/google/uuid"
)

// Libro is a catalog book. Precio goes through the normalizing Precio
// type because legacy rows stored it as text with a currency symbol.
type Libro struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Titulo      string    `gorm:"index;not null"`
	Autor       string    `gorm:"not null"`
	Precio      Precio    `gorm:"type:decimal(10,2);not null"`
	Imagen      *string
	Descripcion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Libro) TableName() string { return "books" }
