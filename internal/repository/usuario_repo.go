package repository

import (
	"context"

	"github.com/Pili-73/Libreria-Pier/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioRepository persists user profiles (the user_profiles table).
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByNombre(ctx context.Context, nombre string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByNombre(ctx context.Context, nombre string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
