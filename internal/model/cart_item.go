package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a per-user, per-book quantity row. The composite unique
// index enforces at most one row per (usuario, libro) pair; re-adding a
// book increments Cantidad instead of inserting a duplicate.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usuario_libro"`
	LibroID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usuario_libro"`
	Cantidad  int       `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Libro *Libro `gorm:"foreignKey:LibroID;constraint:OnDelete:CASCADE"`
}

func (CartItem) TableName() string { return "cart_items" }
