package repository

import (
	"context"

	"github.com/Pili-73/Libreria-Pier/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CarritoRepository persists cart rows. All reads and writes are scoped
// to one user; rows are never touched outside that user's context.
type CarritoRepository interface {
	// Upsert adds cantidad to the (usuario, libro) row, creating it when
	// absent. Executed as a single atomic statement so two concurrent
	// adds of the same book cannot produce duplicate rows or lose an
	// increment.
	Upsert(ctx context.Context, item *model.CartItem) error
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.CartItem, error)
	FindByID(ctx context.Context, usuarioID, itemID uuid.UUID) (*model.CartItem, error)
	UpdateCantidad(ctx context.Context, usuarioID, itemID uuid.UUID, cantidad int) error
	Delete(ctx context.Context, usuarioID, itemID uuid.UUID) error
	DeleteByUsuario(ctx context.Context, usuarioID uuid.UUID) error
}

type carritoRepo struct{ db *gorm.DB }

func NewCarritoRepository(db *gorm.DB) CarritoRepository { return &carritoRepo{db: db} }

func (r *carritoRepo) Upsert(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "usuario_id"}, {Name: "libro_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"cantidad": gorm.Expr("cart_items.cantidad + excluded.cantidad"),
		}),
	}).Create(item).Error
}

func (r *carritoRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Libro").
		Where("usuario_id = ?", usuarioID).
		Order("created_at").
		Find(&items).Error
	return items, err
}

func (r *carritoRepo) FindByID(ctx context.Context, usuarioID, itemID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", itemID, usuarioID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *carritoRepo) UpdateCantidad(ctx context.Context, usuarioID, itemID uuid.UUID, cantidad int) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND usuario_id = ?", itemID, usuarioID).
		Update("cantidad", cantidad)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *carritoRepo) Delete(ctx context.Context, usuarioID, itemID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", itemID, usuarioID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *carritoRepo) DeleteByUsuario(ctx context.Context, usuarioID uuid.UUID) error {
	// Clearing an already-empty cart is a successful no-op.
	return r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Delete(&model.CartItem{}).Error
}
