package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Pili-73/Libreria-Pier/internal/apierror"
	"github.com/Pili-73/Libreria-Pier/internal/model"
	"github.com/Pili-73/Libreria-Pier/internal/service"
	"github.com/Pili-73/Libreria-Pier/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Register model.Precio as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking on the struct type.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(model.Precio); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, model.Precio{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.KindValidation, "JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service sentinel errors to error kinds and HTTP
// statuses. Anything unrecognized is a backend error and stays opaque.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCredencialesInvalidas):
		c.JSON(http.StatusUnauthorized, apierror.New(apierror.KindAuth, err.Error()))
	case errors.Is(err, session.ErrNoSesion):
		c.JSON(http.StatusUnauthorized, apierror.New(apierror.KindNoSession, err.Error()))
	case errors.Is(err, service.ErrNombreEnUso),
		errors.Is(err, service.ErrCantidadInvalida),
		errors.Is(err, service.ErrCarritoVacio):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.KindValidation, err.Error()))
	case errors.Is(err, service.ErrLibroNoEncontrado),
		errors.Is(err, service.ErrItemNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(apierror.KindNotFound, err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.Backend("Error interno del servidor"))
	}
}
