package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pili-73/Libreria-Pier/internal/dto"
	"github.com/Pili-73/Libreria-Pier/internal/model"
	"github.com/Pili-73/Libreria-Pier/internal/repository"
	"github.com/Pili-73/Libreria-Pier/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CarritoService implements the per-user cart. Each (usuario, libro)
// pair is either absent or present with cantidad >= 1; adding an
// already-present book increments the existing row.
type CarritoService interface {
	Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error)
	Agregar(ctx context.Context, usuarioID uuid.UUID, req dto.AgregarItemRequest) error
	ActualizarCantidad(ctx context.Context, usuarioID, itemID uuid.UUID, cantidad int) error
	Quitar(ctx context.Context, usuarioID, itemID uuid.UUID) error
	Vaciar(ctx context.Context, usuarioID uuid.UUID) error
	// Checkout clears the cart and reports the pre-clear total. There is
	// no order record, payment, or inventory movement behind it.
	Checkout(ctx context.Context, usuarioID uuid.UUID, email string) (*dto.CheckoutResponse, error)
}

type carritoService struct {
	repo       repository.CarritoRepository
	libros     repository.LibroRepository
	dispatcher *worker.Dispatcher
}

func NewCarritoService(repo repository.CarritoRepository, libros repository.LibroRepository, dispatcher *worker.Dispatcher) CarritoService {
	return &carritoService{repo: repo, libros: libros, dispatcher: dispatcher}
}

func (s *carritoService) Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.CarritoResponse, error) {
	items, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CarritoResponse{
		Items: make([]dto.ItemCarritoResponse, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		if item.Libro == nil {
			continue
		}
		flat := dto.ItemCarritoResponse{
			CartItemID:  item.ID.String(),
			Cantidad:    item.Cantidad,
			LibroID:     item.Libro.ID.String(),
			Titulo:      item.Libro.Titulo,
			Autor:       item.Libro.Autor,
			Precio:      item.Libro.Precio,
			Imagen:      dto.FromLibro(*item.Libro).Imagen,
			Descripcion: item.Libro.Descripcion,
		}
		resp.Items = append(resp.Items, flat)
		resp.Total = resp.Total.Add(item.Libro.Precio.PorCantidad(item.Cantidad))
		resp.ItemCount += item.Cantidad
	}
	return resp, nil
}

func (s *carritoService) Agregar(ctx context.Context, usuarioID uuid.UUID, req dto.AgregarItemRequest) error {
	cantidad := req.Cantidad
	if cantidad == 0 {
		cantidad = 1
	}
	if cantidad < 1 {
		return ErrCantidadInvalida
	}

	libroID, err := uuid.Parse(req.LibroID)
	if err != nil {
		return ErrLibroNoEncontrado
	}
	if _, err := s.libros.FindByID(ctx, libroID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLibroNoEncontrado
		}
		return err
	}

	return s.repo.Upsert(ctx, &model.CartItem{
		UsuarioID: usuarioID,
		LibroID:   libroID,
		Cantidad:  cantidad,
	})
}

func (s *carritoService) ActualizarCantidad(ctx context.Context, usuarioID, itemID uuid.UUID, cantidad int) error {
	// Cantidad has no zero state: dropping below 1 removes the row.
	if cantidad < 1 {
		return s.Quitar(ctx, usuarioID, itemID)
	}
	if err := s.repo.UpdateCantidad(ctx, usuarioID, itemID, cantidad); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNoEncontrado
		}
		return err
	}
	return nil
}

func (s *carritoService) Quitar(ctx context.Context, usuarioID, itemID uuid.UUID) error {
	if err := s.repo.Delete(ctx, usuarioID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNoEncontrado
		}
		return err
	}
	return nil
}

func (s *carritoService) Vaciar(ctx context.Context, usuarioID uuid.UUID) error {
	return s.repo.DeleteByUsuario(ctx, usuarioID)
}

func (s *carritoService) Checkout(ctx context.Context, usuarioID uuid.UUID, email string) (*dto.CheckoutResponse, error) {
	carrito, err := s.Obtener(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if len(carrito.Items) == 0 {
		return nil, ErrCarritoVacio
	}

	if err := s.repo.DeleteByUsuario(ctx, usuarioID); err != nil {
		return nil, err
	}

	// Confirmation email — best effort, checkout already succeeded.
	if s.dispatcher != nil && email != "" {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: email,
			Subject: "Compra realizada",
			Body:    fmt.Sprintf("Tu compra por un total de %s € se ha realizado con éxito.", carrito.Total.StringFixed(2)),
		})
	}

	return &dto.CheckoutResponse{
		Mensaje: "¡Compra realizada con éxito!",
		Total:   carrito.Total,
	}, nil
}
