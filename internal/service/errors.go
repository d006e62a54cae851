package service

import "errors"

// Sentinel errors returned by the services. Handlers branch on these
// with errors.Is and map each to an error kind + HTTP status, so callers
// never string-match messages.
var (
	// ErrCredencialesInvalidas covers both unknown-user and
	// wrong-password so login failures never reveal which one occurred.
	ErrCredencialesInvalidas = errors.New("Usuario o contraseña incorrectos")
	ErrNombreEnUso           = errors.New("El nombre de usuario ya existe")
	ErrLibroNoEncontrado     = errors.New("Libro no encontrado")
	ErrItemNoEncontrado      = errors.New("Item del carrito no encontrado")
	ErrCantidadInvalida      = errors.New("La cantidad debe ser al menos 1")
	ErrCarritoVacio          = errors.New("El carrito está vacío")
)
