package service

import (
	"context"
	"testing"

	"github.com/Pili-73/Libreria-Pier/internal/dto"
	"github.com/Pili-73/Libreria-Pier/internal/model"
	"github.com/Pili-73/Libreria-Pier/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory Repository Stubs ────────────────────────────────────────────────

type stubLibroRepo struct {
	libros map[uuid.UUID]*model.Libro
}

func newStubLibroRepo() *stubLibroRepo {
	return &stubLibroRepo{libros: make(map[uuid.UUID]*model.Libro)}
}

func (r *stubLibroRepo) List(_ context.Context) ([]model.Libro, error) {
	out := make([]model.Libro, 0, len(r.libros))
	for _, l := range r.libros {
		out = append(out, *l)
	}
	return out, nil
}

func (r *stubLibroRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Libro, error) {
	l, ok := r.libros[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubLibroRepo) Update(_ context.Context, l *model.Libro) error {
	r.libros[l.ID] = l
	return nil
}

func (r *stubLibroRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.libros, id)
	return nil
}

var _ repository.LibroRepository = (*stubLibroRepo)(nil)

// stubCarritoRepo mimics the storage layer's atomic merge: Upsert
// increments the existing (usuario, libro) row instead of duplicating it.
type stubCarritoRepo struct {
	items  map[uuid.UUID]*model.CartItem
	libros *stubLibroRepo
}

func newStubCarritoRepo(libros *stubLibroRepo) *stubCarritoRepo {
	return &stubCarritoRepo{items: make(map[uuid.UUID]*model.CartItem), libros: libros}
}

func (r *stubCarritoRepo) Upsert(_ context.Context, item *model.CartItem) error {
	for _, existing := range r.items {
		if existing.UsuarioID == item.UsuarioID && existing.LibroID == item.LibroID {
			existing.Cantidad += item.Cantidad
			return nil
		}
	}
	item.ID = uuid.New()
	copia := *item
	r.items[item.ID] = &copia
	return nil
}

func (r *stubCarritoRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, item := range r.items {
		if item.UsuarioID != usuarioID {
			continue
		}
		withLibro := *item
		withLibro.Libro = r.libros.libros[item.LibroID]
		out = append(out, withLibro)
	}
	return out, nil
}

func (r *stubCarritoRepo) FindByID(_ context.Context, usuarioID, itemID uuid.UUID) (*model.CartItem, error) {
	item, ok := r.items[itemID]
	if !ok || item.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *stubCarritoRepo) UpdateCantidad(_ context.Context, usuarioID, itemID uuid.UUID, cantidad int) error {
	item, ok := r.items[itemID]
	if !ok || item.UsuarioID != usuarioID {
		return gorm.ErrRecordNotFound
	}
	item.Cantidad = cantidad
	return nil
}

func (r *stubCarritoRepo) Delete(_ context.Context, usuarioID, itemID uuid.UUID) error {
	item, ok := r.items[itemID]
	if !ok || item.UsuarioID != usuarioID {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *stubCarritoRepo) DeleteByUsuario(_ context.Context, usuarioID uuid.UUID) error {
	for id, item := range r.items {
		if item.UsuarioID == usuarioID {
			delete(r.items, id)
		}
	}
	return nil
}

var _ repository.CarritoRepository = (*stubCarritoRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func seedLibro(repo *stubLibroRepo, titulo, precio string) *model.Libro {
	l := &model.Libro{
		ID:     uuid.New(),
		Titulo: titulo,
		Autor:  "Autor de Prueba",
		Precio: model.PrecioFromString(precio),
	}
	repo.libros[l.ID] = l
	return l
}

func newCarritoFixture() (CarritoService, *stubCarritoRepo, *stubLibroRepo) {
	libros := newStubLibroRepo()
	carrito := newStubCarritoRepo(libros)
	return NewCarritoService(carrito, libros, nil), carrito, libros
}

func agregar(t *testing.T, svc CarritoService, uid uuid.UUID, libroID uuid.UUID, cantidad int) {
	t.Helper()
	err := svc.Agregar(context.Background(), uid, dto.AgregarItemRequest{
		LibroID:  libroID.String(),
		Cantidad: cantidad,
	})
	require.NoError(t, err)
}

// ── Tests: Agregar ────────────────────────────────────────────────────────────

func TestAgregar_NuevoLibro(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro A", "10.00")

	agregar(t, svc, uid, libro.ID, 2)

	assert.Len(t, repo.items, 1)
	for _, item := range repo.items {
		assert.Equal(t, 2, item.Cantidad)
	}
}

func TestAgregar_LibroYaPresente_IncrementaSinDuplicar(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro A", "10.00")

	agregar(t, svc, uid, libro.ID, 1)
	agregar(t, svc, uid, libro.ID, 3)

	require.Len(t, repo.items, 1, "no debe haber filas duplicadas")
	for _, item := range repo.items {
		assert.Equal(t, 4, item.Cantidad)
	}
}

func TestAgregar_CantidadPorDefectoEsUno(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro A", "10.00")

	agregar(t, svc, uid, libro.ID, 0)

	for _, item := range repo.items {
		assert.Equal(t, 1, item.Cantidad)
	}
}

func TestAgregar_LibroInexistente(t *testing.T) {
	svc, _, _ := newCarritoFixture()

	err := svc.Agregar(context.Background(), uuid.New(), dto.AgregarItemRequest{
		LibroID: uuid.New().String(), Cantidad: 1,
	})
	assert.ErrorIs(t, err, ErrLibroNoEncontrado)
}

func TestAgregar_CantidadNegativa(t *testing.T) {
	svc, _, libros := newCarritoFixture()
	libro := seedLibro(libros, "Libro A", "10.00")

	err := svc.Agregar(context.Background(), uuid.New(), dto.AgregarItemRequest{
		LibroID: libro.ID.String(), Cantidad: -2,
	})
	assert.ErrorIs(t, err, ErrCantidadInvalida)
}

// ── Tests: ActualizarCantidad ─────────────────────────────────────────────────

func TestActualizarCantidad_CeroEquivaleAQuitar(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro A", "10.00")
	agregar(t, svc, uid, libro.ID, 2)

	var itemID uuid.UUID
	for id := range repo.items {
		itemID = id
	}

	require.NoError(t, svc.ActualizarCantidad(context.Background(), uid, itemID, 0))
	assert.Empty(t, repo.items)
}

func TestActualizarCantidad_NegativaEquivaleAQuitar(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro A", "10.00")
	agregar(t, svc, uid, libro.ID, 2)

	var itemID uuid.UUID
	for id := range repo.items {
		itemID = id
	}

	require.NoError(t, svc.ActualizarCantidad(context.Background(), uid, itemID, -1))
	assert.Empty(t, repo.items)
}

func TestActualizarCantidad_EscribeNuevaCantidad(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro A", "10.00")
	agregar(t, svc, uid, libro.ID, 2)

	var itemID uuid.UUID
	for id := range repo.items {
		itemID = id
	}

	require.NoError(t, svc.ActualizarCantidad(context.Background(), uid, itemID, 5))
	assert.Equal(t, 5, repo.items[itemID].Cantidad)
}

func TestActualizarCantidad_ItemAjeno(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro A", "10.00")
	agregar(t, svc, uid, libro.ID, 1)

	var itemID uuid.UUID
	for id := range repo.items {
		itemID = id
	}

	otro := uuid.New()
	err := svc.ActualizarCantidad(context.Background(), otro, itemID, 3)
	assert.ErrorIs(t, err, ErrItemNoEncontrado)
}

// ── Tests: Quitar / Vaciar ────────────────────────────────────────────────────

func TestQuitarYVolverAAgregar_EmpiezaDeCero(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro A", "10.00")
	agregar(t, svc, uid, libro.ID, 5)

	var itemID uuid.UUID
	for id := range repo.items {
		itemID = id
	}
	require.NoError(t, svc.Quitar(context.Background(), uid, itemID))

	agregar(t, svc, uid, libro.ID, 2)

	require.Len(t, repo.items, 1)
	for _, item := range repo.items {
		assert.Equal(t, 2, item.Cantidad, "la cantidad no debe retomar la fila eliminada")
	}
}

func TestVaciar_CarritoVacioEsNoOpExitoso(t *testing.T) {
	svc, _, _ := newCarritoFixture()
	assert.NoError(t, svc.Vaciar(context.Background(), uuid.New()))
}

// ── Tests: Totales ────────────────────────────────────────────────────────────

func TestObtener_TotalYConteo(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()

	// Precio textual y numérico deben sumar igual.
	libroA := seedLibro(libros, "Libro A", "12.50 €")
	libroB := seedLibro(libros, "Libro B", "7.00")

	agregar(t, svc, uid, libroA.ID, 2)
	agregar(t, svc, uid, libroB.ID, 1)

	carrito, err := svc.Obtener(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "32", carrito.Total.String())
	assert.Equal(t, 3, carrito.ItemCount)
	assert.Len(t, carrito.Items, 2)

	// Quitar Libro B y recalcular.
	var itemB uuid.UUID
	for id, item := range repo.items {
		if item.LibroID == libroB.ID {
			itemB = id
		}
	}
	require.NoError(t, svc.Quitar(context.Background(), uid, itemB))

	carrito, err = svc.Obtener(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "25", carrito.Total.String())
	assert.Equal(t, 2, carrito.ItemCount)
}

func TestObtener_PrecioIlegibleCuentaComoCero(t *testing.T) {
	svc, _, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro Raro", "precio desconocido")

	agregar(t, svc, uid, libro.ID, 3)

	carrito, err := svc.Obtener(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, carrito.Total.IsZero())
	assert.Equal(t, 3, carrito.ItemCount)
}

func TestObtener_CarritoVacio(t *testing.T) {
	svc, _, _ := newCarritoFixture()

	carrito, err := svc.Obtener(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, carrito.Items)
	assert.True(t, carrito.Total.IsZero())
	assert.Zero(t, carrito.ItemCount)
}

// ── Tests: Checkout ───────────────────────────────────────────────────────────

func TestCheckout_VaciaElCarritoYDevuelveElTotal(t *testing.T) {
	svc, repo, libros := newCarritoFixture()
	uid := uuid.New()
	libro := seedLibro(libros, "Libro A", "12.50")
	agregar(t, svc, uid, libro.ID, 2)

	resp, err := svc.Checkout(context.Background(), uid, "")
	require.NoError(t, err)
	assert.Equal(t, "25", resp.Total.String())
	assert.NotEmpty(t, resp.Mensaje)
	assert.Empty(t, repo.items)
}

func TestCheckout_CarritoVacio(t *testing.T) {
	svc, _, _ := newCarritoFixture()

	_, err := svc.Checkout(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrCarritoVacio)
}
