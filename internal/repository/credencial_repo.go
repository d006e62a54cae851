package repository

import (
	"context"

	"github.com/Pili-73/Libreria-Pier/internal/model"

	"gorm.io/gorm"
)

// CredencialRepository persists authentication records keyed by the
// synthetic email. Kept separate from UsuarioRepository because the
// credential store and the profile table are distinct systems of record
// (registration writes them in two non-atomic steps).
type CredencialRepository interface {
	Create(ctx context.Context, c *model.Credencial) error
	FindByEmail(ctx context.Context, email string) (*model.Credencial, error)
}

type credencialRepo struct{ db *gorm.DB }

func NewCredencialRepository(db *gorm.DB) CredencialRepository { return &credencialRepo{db: db} }

func (r *credencialRepo) Create(ctx context.Context, c *model.Credencial) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *credencialRepo) FindByEmail(ctx context.Context, email string) (*model.Credencial, error) {
	var c model.Credencial
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
