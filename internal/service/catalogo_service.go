package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Pili-73/Libreria-Pier/internal/dto"
	"github.com/Pili-73/Libreria-Pier/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const libroCacheTTL = 1 * time.Hour

// CatalogoService defines the read/update/delete surface over books.
type CatalogoService interface {
	Listar(ctx context.Context) ([]dto.LibroResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.LibroResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarLibroRequest) (*dto.LibroResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type catalogoService struct {
	repo repository.LibroRepository
	rdb  *redis.Client
}

func NewCatalogoService(repo repository.LibroRepository, rdb *redis.Client) CatalogoService {
	return &catalogoService{repo: repo, rdb: rdb}
}

func libroCacheKey(id uuid.UUID) string { return "libro:" + id.String() }

func (s *catalogoService) Listar(ctx context.Context) ([]dto.LibroResponse, error) {
	libros, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.LibroResponse, 0, len(libros))
	for _, l := range libros {
		result = append(result, dto.FromLibro(l))
	}
	return result, nil
}

func (s *catalogoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.LibroResponse, error) {
	cacheKey := libroCacheKey(id)

	// Detail views are the hottest read — try the cache first.
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.LibroResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	libro, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLibroNoEncontrado
		}
		return nil, err
	}

	resp := dto.FromLibro(*libro)

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey, b, libroCacheTTL).Err()
		}
	}

	return &resp, nil
}

func (s *catalogoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarLibroRequest) (*dto.LibroResponse, error) {
	libro, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLibroNoEncontrado
		}
		return nil, err
	}

	if req.Titulo != nil {
		libro.Titulo = *req.Titulo
	}
	if req.Autor != nil {
		libro.Autor = *req.Autor
	}
	if req.Precio != nil {
		libro.Precio = *req.Precio
	}
	if req.Imagen != nil {
		libro.Imagen = req.Imagen
	}
	if req.Descripcion != nil {
		libro.Descripcion = req.Descripcion
	}

	if err := s.repo.Update(ctx, libro); err != nil {
		return nil, err
	}
	s.invalidar(ctx, id)

	resp := dto.FromLibro(*libro)
	return &resp, nil
}

func (s *catalogoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLibroNoEncontrado
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidar(ctx, id)
	return nil
}

func (s *catalogoService) invalidar(ctx context.Context, id uuid.UUID) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, libroCacheKey(id)).Err()
	}
}
