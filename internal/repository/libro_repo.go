package repository

import (
	"context"

	"github.com/Pili-73/Libreria-Pier/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LibroRepository is the CRUD surface over catalog books.
type LibroRepository interface {
	List(ctx context.Context) ([]model.Libro, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Libro, error)
	Update(ctx context.Context, l *model.Libro) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type libroRepo struct{ db *gorm.DB }

func NewLibroRepository(db *gorm.DB) LibroRepository { return &libroRepo{db: db} }

func (r *libroRepo) List(ctx context.Context) ([]model.Libro, error) {
	var libros []model.Libro
	err := r.db.WithContext(ctx).Order("titulo").Find(&libros).Error
	return libros, err
}

func (r *libroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Libro, error) {
	var l model.Libro
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *libroRepo) Update(ctx context.Context, l *model.Libro) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *libroRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Libro{}, "id = ?", id).Error
}
